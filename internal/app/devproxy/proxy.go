/*
Package devproxy forwards API paths to the back ends during development, so the
browser can talk to one origin. Rules are matched by longest path prefix.
*/
package devproxy

import (
	"cmp"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"chatfront/internal/pkg/errs"
	"chatfront/internal/pkg/logx"
	"chatfront/internal/pkg/resp"
)

// Rule forwards every path under Prefix to Target.
type Rule struct {
	Prefix string `json:"prefix"`
	Target string `json:"target"`
}

// DefaultRules returns the standard table: admin pages and APIs go to the
// admin back end, remaining /v1 traffic goes to the chat gateway.
func DefaultRules(adminURL, gatewayURL string) []Rule {
	return []Rule{
		{Prefix: "/v1/admin", Target: adminURL},
		{Prefix: "/docs", Target: adminURL},
		{Prefix: "/redoc", Target: adminURL},
		{Prefix: "/openapi.json", Target: adminURL},
		{Prefix: "/cache", Target: adminURL},
		{Prefix: "/v1", Target: gatewayURL},
	}
}

type route struct {
	rule  Rule
	proxy *httputil.ReverseProxy
}

// Proxy is an http.Handler over a fixed rule table.
type Proxy struct {
	routes []route
	logger zerolog.Logger
}

// New validates rules and builds a reverse proxy per rule.
func New(rules []Rule) (*Proxy, error) {
	p := &Proxy{logger: logx.Component("devproxy")}

	for _, rule := range rules {
		if !strings.HasPrefix(rule.Prefix, "/") {
			return nil, fmt.Errorf("proxy prefix %q must start with /", rule.Prefix)
		}

		target, err := url.Parse(rule.Target)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("proxy target %q for %s must be an absolute URL", rule.Target, rule.Prefix)
		}

		rule.Prefix = strings.TrimSuffix(rule.Prefix, "/")
		p.routes = append(p.routes, route{rule: rule, proxy: p.newReverseProxy(rule.Prefix, target)})
	}

	slices.SortStableFunc(p.routes, func(a, b route) int {
		return cmp.Compare(len(b.rule.Prefix), len(a.rule.Prefix))
	})

	return p, nil
}

// newReverseProxy forwards to target, rewriting the Host header to the
// target's host.
func (p *Proxy) newReverseProxy(prefix string, target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.logger.Error().
				Err(err).
				Str("prefix", prefix).
				Str("target", target.Host).
				Str("path", r.URL.Path).
				Msg("Proxy request failed.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUpstreamUnavailable, target.Host))
		},
	}
}

// Rules returns the table in match order.
func (p *Proxy) Rules() []Rule {
	rules := make([]Rule, 0, len(p.routes))
	for _, r := range p.routes {
		rules = append(rules, r.rule)
	}
	return rules
}

// match returns the route serving path. Prefixes only match whole segments, so
// "/v1" serves "/v1" and "/v1/chat" but not "/v1beta".
func (p *Proxy) match(path string) (route, bool) {
	for _, r := range p.routes {
		prefix := r.rule.Prefix
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return r, true
		}
	}
	return route{}, false
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt, ok := p.match(r.URL.Path)
	if !ok {
		resp.RespondError(w, r, errs.NewError(errs.ErrProxyRouteNotFound))
		return
	}

	rt.proxy.ServeHTTP(w, r)
}
