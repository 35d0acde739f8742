// Package metrics exposes backend call metrics for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Backend records one observation per REST round trip. It satisfies
// backend.Observer.
type Backend struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewBackend() *Backend {
	reg := prometheus.NewRegistry()
	b := &Backend{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festify",
			Name:      "backend_requests_total",
			Help:      "REST calls to the Festify backend by method and status code.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "festify",
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of REST calls to the Festify backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(b.requests, b.duration)
	return b
}

func (b *Backend) ObserveRequest(method string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	b.requests.WithLabelValues(method, code).Inc()
	b.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (b *Backend) Handler() http.Handler {
	return promhttp.HandlerFor(b.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (b *Backend) Registry() *prometheus.Registry { return b.registry }
