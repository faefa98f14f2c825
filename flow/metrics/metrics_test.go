package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestRecordStepLatencyDisabledIsNoop(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	m.Disable()

	// Recording while disabled must not panic and must not register an
	// observation; re-enabling and observing once should leave exactly
	// one sample behind.
	m.RecordStepLatency("f1", "n1", 5*time.Millisecond, "success")
	m.Enable()
	m.RecordStepLatency("f1", "n1", 5*time.Millisecond, "success")

	var hist dto.Metric
	if err := m.stepLatency.WithLabelValues("f1", "n1", "success").(prometheus.Histogram).Write(&hist); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := hist.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("step_latency_ms sample count = %d, want 1", got)
	}
}

func TestSetActiveSessions(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.SetActiveSessions(3)
	if got := gaugeValue(t, m.activeSessions); got != 3 {
		t.Errorf("active_sessions = %v, want 3", got)
	}

	m.SetActiveSessions(0)
	if got := gaugeValue(t, m.activeSessions); got != 0 {
		t.Errorf("active_sessions = %v, want 0", got)
	}
}

func TestIncrementCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.IncrementRetries("f1", "n1")
	m.IncrementEscalations("f1")
	m.IncrementSteps("f1", "message")

	var retry dto.Metric
	m.retries.WithLabelValues("f1", "n1").Write(&retry)
	if retry.GetCounter().GetValue() != 1 {
		t.Errorf("retries_total = %v, want 1", retry.GetCounter().GetValue())
	}
}
