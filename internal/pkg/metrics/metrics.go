/*
Package metrics exposes Prometheus collectors for the auth state store and the
websocket watchers, registered on a private registry.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "chatfront"

// Metrics implements authstate.Recorder and watch.Recorder.
type Metrics struct {
	Registry *prometheus.Registry

	subscribers   prometheus.Gauge
	notifications *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	watchers      prometheus.Gauge
}

// New creates the collectors on a fresh registry, alongside the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		subscribers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "auth",
			Name:      "subscribers",
			Help:      "Number of registered auth state subscribers.",
		}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "auth",
			Name:      "notifications_total",
			Help:      "Snapshot deliveries to subscribers, by result.",
		}, []string{"result"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "auth",
			Name:      "transitions_total",
			Help:      "Auth state writes, by resulting state.",
		}, []string{"state"}),
		watchers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "ws",
			Name:      "watchers",
			Help:      "Number of open auth state websocket watchers.",
		}),
	}
}

// SubscribersChanged sets the registered subscriber gauge.
func (m *Metrics) SubscribersChanged(active int) {
	m.subscribers.Set(float64(active))
}

// Notified counts delivered and failed subscriber calls.
func (m *Metrics) Notified(delivered, failed int) {
	if delivered > 0 {
		m.notifications.WithLabelValues("delivered").Add(float64(delivered))
	}
	if failed > 0 {
		m.notifications.WithLabelValues("failed").Add(float64(failed))
	}
}

// Transitioned counts a state write by its resulting state.
func (m *Metrics) Transitioned(authenticated bool) {
	state := "anonymous"
	if authenticated {
		state = "authenticated"
	}
	m.transitions.WithLabelValues(state).Inc()
}

// WatchersChanged sets the open websocket watcher gauge.
func (m *Metrics) WatchersChanged(open int) {
	m.watchers.Set(float64(open))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
