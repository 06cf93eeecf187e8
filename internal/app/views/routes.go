/*
Package views describes the admin front-end's view routes and serves the built
single-page app with history-mode fallback.
*/
package views

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"chatfront/internal/pkg/errs"
	"chatfront/internal/pkg/resp"
)

// Route maps a browser path to a named view.
type Route struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Routes is the view table of the admin front-end.
var Routes = []Route{
	{Path: "/", Name: "Intro"},
	{Path: "/login", Name: "Login"},
	{Path: "/register", Name: "Register"},
	{Path: "/admin", Name: "Admin"},
	{Path: "/admin/systems", Name: "AdminSystems"},
	{Path: "/chat", Name: "Chat"},
}

// Lookup finds the view for p. A trailing slash is ignored.
func Lookup(p string) (Route, bool) {
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}

	for _, r := range Routes {
		if r.Path == p {
			return r, true
		}
	}

	return Route{}, false
}

// Handler serves the front-end.
//
// With a distDir, existing files are served as-is and any other GET or HEAD
// request receives index.html so the client router can resolve it.
// Without one, known view paths answer with a JSON description of the view.
func Handler(distDir string) http.Handler {
	if distDir == "" {
		return http.HandlerFunc(serveViewInfo)
	}

	root := http.Dir(distDir)
	files := http.FileServer(root)
	index := filepath.Join(distDir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			resp.RespondError(w, r, errs.NewError(errs.ErrViewNotFound))
			return
		}

		if isFile(root, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}

		if _, err := os.Stat(index); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrViewNotFound))
			return
		}

		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	})
}

func isFile(root http.FileSystem, p string) bool {
	f, err := root.Open(path.Clean("/" + p))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

func serveViewInfo(w http.ResponseWriter, r *http.Request) {
	route, ok := Lookup(r.URL.Path)
	if !ok || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		resp.RespondError(w, r, errs.NewError(errs.ErrViewNotFound))
		return
	}

	resp.RespondSuccess(w, r, map[string]any{"view": route})
}
