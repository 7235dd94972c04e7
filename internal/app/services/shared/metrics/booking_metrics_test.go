package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if value, ok := labels[pair.GetName()]; ok && value == pair.GetValue() {
			matched++
		}
	}
	return matched == len(labels)
}

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveOperation("book", "success")
	m.ObserveOperation("book", "success")
	m.ObserveOperation("book", "SlotTaken")
	m.ObserveLockWait("book", 3*time.Millisecond)
	m.ObserveCompensation("book", true)
	m.ObserveSideEffectFailure("event")

	assert.Equal(t, float64(2), counterValue(t, reg, "docbook_booking_operations_total", map[string]string{"event": "book", "outcome": "success"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "docbook_booking_operations_total", map[string]string{"event": "book", "outcome": "SlotTaken"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "docbook_booking_compensations_total", map[string]string{"event": "book", "status": "succeeded"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "docbook_booking_side_effect_failures_total", map[string]string{"kind": "event"}))
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveOperation("book", "success")
	m.ObserveLockWait("book", time.Millisecond)
	m.ObserveCompensation("cancel", false)
	m.ObserveSideEffectFailure("receipt")
}
