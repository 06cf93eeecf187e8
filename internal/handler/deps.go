package handler

import (
	"chatfront/internal/app/authstate"
	"chatfront/internal/app/devproxy"
	"chatfront/internal/app/watch"
	"chatfront/internal/configs"
	"chatfront/internal/pkg/metrics"
)

// AppDeps is everything the router needs. Proxy is nil when the dev proxy is
// disabled.
type AppDeps struct {
	Config  *configs.AppConfig
	Store   *authstate.Store
	Hub     *watch.Hub
	Proxy   *devproxy.Proxy
	Metrics *metrics.Metrics
}
