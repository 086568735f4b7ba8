// Package metrics exposes Prometheus collectors for the dispatcher and the
// console front ends.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/controller"
)

const namespace = "wishform"

// Metrics owns a private registry so tests and embedders never collide on
// the global one.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	stale    *prometheus.CounterVec
	actions  *prometheus.CounterVec
}

var _ client.Observer = (*Metrics)(nil)

// New registers every collector. withRuntime adds the Go and process
// collectors.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Requests sent to the wishlist API by operation and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Wishlist API round trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_total",
			Help:      "Responses dropped because a newer action was issued.",
		}, []string{"resource", "action"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "console_actions_total",
			Help:      "Console actions by resource, action and result.",
		}, []string{"resource", "action", "result"}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.stale, m.actions)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// ObserveRequest implements client.Observer.
func (m *Metrics) ObserveRequest(op client.Operation, status int, elapsed time.Duration, err error) {
	label := strconv.Itoa(status)
	if status == 0 {
		label = "transport"
	}
	m.requests.WithLabelValues(string(op), label).Inc()
	m.duration.WithLabelValues(string(op)).Observe(elapsed.Seconds())
}

// Stale matches controller.StaleHook.
func (m *Metrics) Stale(resource string, action controller.Action) {
	m.stale.WithLabelValues(resource, string(action)).Inc()
}

// ObserveAction counts a console action. err is the action's own failure.
func (m *Metrics) ObserveAction(resource, action string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.actions.WithLabelValues(resource, action, result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
