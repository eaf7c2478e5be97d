package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus metrics.
type Metrics struct {
	// Upstream ledger metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec

	// Lifecycle metrics
	LifecycleActions *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		UpstreamRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depositcore_ledger_requests_total",
				Help: "Total number of requests to the upstream core-banking ledger",
			},
			[]string{"operation", "outcome"},
		),
		UpstreamDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depositcore_ledger_request_duration_seconds",
				Help:    "Upstream ledger request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		LifecycleActions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depositcore_lifecycle_actions_total",
				Help: "Total number of committed deposit lifecycle actions",
			},
			[]string{"action", "outcome"},
		),
	}
}

// RecordUpstream records one upstream ledger call.
func (m *Metrics) RecordUpstream(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordLifecycle records one lifecycle mutation outcome.
func (m *Metrics) RecordLifecycle(action, outcome string) {
	if m == nil {
		return
	}
	m.LifecycleActions.WithLabelValues(action, outcome).Inc()
}
