// Package metrics provides a Prometheus-backed metrics collector for
// engine execution: step latency, node outcomes, retries, and active
// session counts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics collects engine execution metrics, namespaced
// "flowcore_":
//
//   - active_sessions (gauge): sessions currently not in a terminal status.
//   - step_latency_ms (histogram): node handler duration, labelled by
//     flow_id, node_id, status (success/error).
//   - retries_total (counter): tool-call retry attempts, labelled by
//     flow_id, node_id.
//   - escalations_total (counter): sessions that terminated escalated,
//     labelled by flow_id.
//   - steps_total (counter): run-loop steps taken, labelled by flow_id,
//     node_kind.
type PrometheusMetrics struct {
	activeSessions prometheus.Gauge
	stepLatency    *prometheus.HistogramVec
	retries        *prometheus.CounterVec
	escalations    *prometheus.CounterVec
	steps          *prometheus.CounterVec

	enabled bool
}

// New creates and registers flowcore's metrics with registry. Pass
// prometheus.DefaultRegisterer for the global registry, or a fresh
// prometheus.NewRegistry() for test isolation.
func New(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		enabled: true,
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "flowcore",
			Name:      "active_sessions",
			Help:      "Sessions currently not in a terminal status",
		}),
		stepLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flowcore",
			Name:      "step_latency_ms",
			Help:      "Node handler execution duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		}, []string{"flow_id", "node_id", "status"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowcore",
			Name:      "retries_total",
			Help:      "Tool-call retry attempts",
		}, []string{"flow_id", "node_id"}),
		escalations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowcore",
			Name:      "escalations_total",
			Help:      "Sessions that terminated with status escalated",
		}, []string{"flow_id"}),
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowcore",
			Name:      "steps_total",
			Help:      "Run-loop steps executed, by node kind",
		}, []string{"flow_id", "node_kind"}),
	}
}

// RecordStepLatency records a node handler's execution duration.
func (m *PrometheusMetrics) RecordStepLatency(flowID, nodeID string, d time.Duration, status string) {
	if !m.enabled {
		return
	}
	m.stepLatency.WithLabelValues(flowID, nodeID, status).Observe(float64(d.Milliseconds()))
}

// IncrementRetries records one tool-call retry attempt.
func (m *PrometheusMetrics) IncrementRetries(flowID, nodeID string) {
	if !m.enabled {
		return
	}
	m.retries.WithLabelValues(flowID, nodeID).Inc()
}

// IncrementEscalations records one session terminating escalated.
func (m *PrometheusMetrics) IncrementEscalations(flowID string) {
	if !m.enabled {
		return
	}
	m.escalations.WithLabelValues(flowID).Inc()
}

// IncrementSteps records one run-loop step for nodeKind.
func (m *PrometheusMetrics) IncrementSteps(flowID, nodeKind string) {
	if !m.enabled {
		return
	}
	m.steps.WithLabelValues(flowID, nodeKind).Inc()
}

// SetActiveSessions sets the current count of non-terminal sessions.
func (m *PrometheusMetrics) SetActiveSessions(count int) {
	if !m.enabled {
		return
	}
	m.activeSessions.Set(float64(count))
}

// Disable suppresses all recording (useful for benchmarks and tests that
// don't want registry churn).
func (m *PrometheusMetrics) Disable() { m.enabled = false }

// Enable re-enables recording after Disable.
func (m *PrometheusMetrics) Enable() { m.enabled = true }
