// ABOUTME: Prometheus metrics for dispatch outcomes and durations
// ABOUTME: Implements the dispatch Observer; exposed via a /metrics handler

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beaconlabs/beacon-gateway/internal/dispatch"
)

// Metrics collects dispatch counters and durations.
type Metrics struct {
	registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beacon",
		Subsystem: "dispatch",
		Name:      "requests_total",
		Help:      "Dispatched requests by capability and outcome.",
	}, []string{"capability", "outcome"})

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "beacon",
		Subsystem: "dispatch",
		Name:      "duration_seconds",
		Help:      "Dispatch duration by capability.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"capability"})

	registry.MustRegister(dispatches, durations)

	return &Metrics{
		registry:   registry,
		dispatches: dispatches,
		durations:  durations,
	}
}

// ObserveDispatch implements dispatch.Observer.
func (m *Metrics) ObserveDispatch(rec dispatch.Record) {
	m.dispatches.WithLabelValues(rec.Capability, rec.Outcome).Inc()
	m.durations.WithLabelValues(rec.Capability).Observe(rec.Duration.Seconds())
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
