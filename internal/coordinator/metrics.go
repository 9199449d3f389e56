package coordinator

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK     = "ok"
	outcomeMisuse = "misuse"
	outcomeError  = "error"
)

// Metrics records lifecycle operations of every coordinator sharing it.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_coordinator_operations_total",
				Help: "Transaction lifecycle operations by outcome",
			},
			[]string{"op", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pos_coordinator_operation_duration_seconds",
				Help:    "Duration of transaction lifecycle operations, lock wait included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

func (m *Metrics) observe(op string, elapsed time.Duration, err error) {
	m.operations.WithLabelValues(op, outcome(err)).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrTransactionActive), errors.Is(err, ErrNoTransaction), errors.Is(err, ErrClosed):
		return outcomeMisuse
	default:
		return outcomeError
	}
}
