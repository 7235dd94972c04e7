package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics exposes counters/histograms for lifecycle operations.
type BookingMetrics struct {
	operationsTotal    *prometheus.CounterVec
	lockWait           *prometheus.HistogramVec
	compensationsTotal *prometheus.CounterVec
	publishFailures    *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docbook",
			Subsystem: "booking",
			Name:      "operations_total",
			Help:      "Lifecycle operations by event and outcome",
		}, []string{"event", "outcome"}),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "docbook",
			Subsystem: "booking",
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting to enter a doctor's critical section",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"event"}),
		compensationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docbook",
			Subsystem: "booking",
			Name:      "compensations_total",
			Help:      "Compensating slot index writes after a failed persist",
		}, []string{"event", "status"}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docbook",
			Subsystem: "booking",
			Name:      "side_effect_failures_total",
			Help:      "Event or receipt side effects that failed after commit",
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operationsTotal, m.lockWait, m.compensationsTotal, m.publishFailures)
	return m
}

func (m *BookingMetrics) ObserveOperation(event, outcome string) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(event, outcome).Inc()
}

func (m *BookingMetrics) ObserveLockWait(event string, wait time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.WithLabelValues(event).Observe(wait.Seconds())
}

func (m *BookingMetrics) ObserveCompensation(event string, succeeded bool) {
	if m == nil {
		return
	}
	status := "failed"
	if succeeded {
		status = "succeeded"
	}
	m.compensationsTotal.WithLabelValues(event, status).Inc()
}

func (m *BookingMetrics) ObserveSideEffectFailure(kind string) {
	if m == nil {
		return
	}
	m.publishFailures.WithLabelValues(kind).Inc()
}
