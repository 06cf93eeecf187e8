/*
Package handler provides the HTTP handlers and routing setup for the chatfront server.

This file defines the main Router, applying middleware like logging, CORS and
IP-based rate limiting before delegating requests to the auth API, the auth
state websocket, the dev proxy and the front-end views.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"chatfront/internal/app/views"
	"chatfront/internal/pkg/auth/jwt"
	"chatfront/internal/pkg/limiter"
	"chatfront/internal/pkg/logx"
	"chatfront/internal/pkg/resp"
)

// Router sets up the main HTTP routing table for the application.
// The returned stop func ends the rate limiters' cleanup goroutines.
func Router(deps *AppDeps) (http.Handler, func()) {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(deps.Config.LoginRate), deps.Config.LoginBurst)
	wsLimiter := limiter.NewIPRateLimiter(rate.Limit(deps.Config.WSRate), deps.Config.WSBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":      "ok",
			"service":     "chatfront",
			"subscribers": deps.Store.Subscribers(),
			"watchers":    deps.Hub.Count(),
		}
		resp.RespondSuccess(w, r, data)
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.With(loginLimiter.Middleware).Post("/login", HandleLogin(deps))

			auth.Group(func(admin chi.Router) {
				admin.Use(jwt.RequireAdmin)

				admin.Get("/user", HandleGetUser(deps))
				admin.Get("/state", HandleGetState(deps))
				admin.Post("/logout", HandleLogout(deps))
			})
		})

		api.Get("/views", HandleListViews(deps))
	})

	r.With(
		wsLimiter.Middleware,
		jwt.WebSocketIdentityMiddleware(deps.Config.JWTSecret),
		jwt.RequireAdmin,
	).Get("/ws/auth", HandleAuthWebSocket(deps, wsUpgrader))

	if deps.Proxy != nil {
		for _, rule := range deps.Proxy.Rules() {
			r.Handle(rule.Prefix, deps.Proxy)
			r.Handle(rule.Prefix+"/*", deps.Proxy)
		}
	}

	fallback := views.Handler(deps.Config.StaticDir)
	r.NotFound(fallback.ServeHTTP)
	r.MethodNotAllowed(fallback.ServeHTTP)

	return r, func() {
		loginLimiter.Stop()
		wsLimiter.Stop()
	}
}
