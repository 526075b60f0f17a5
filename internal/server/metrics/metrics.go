// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Authentication events counted by AuthEventsTotal.
const (
	EventRegister     = "register"
	EventConflict     = "conflict"
	EventLogin        = "login"
	EventLoginFailed  = "login_failed"
	EventTokenInvalid = "token_invalid"
	EventRateLimited  = "rate_limited"
)

// Metrics holds the server collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	GRPCRequestsTotal   *prometheus.CounterVec
	GRPCRequestDuration *prometheus.HistogramVec
	AuthEventsTotal     *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GRPCRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notevault_grpc_requests_total",
				Help: "Total number of gRPC requests",
			},
			[]string{"method", "code"},
		),
		GRPCRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notevault_grpc_request_duration_seconds",
				Help:    "gRPC request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		AuthEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notevault_auth_events_total",
				Help: "Authentication outcomes by event",
			},
			[]string{"event"},
		),
	}

	m.registry.MustRegister(
		m.GRPCRequestsTotal,
		m.GRPCRequestDuration,
		m.AuthEventsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(method, code string, d time.Duration) {
	m.GRPCRequestsTotal.WithLabelValues(method, code).Inc()
	m.GRPCRequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) AuthEvent(event string) {
	m.AuthEventsTotal.WithLabelValues(event).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
