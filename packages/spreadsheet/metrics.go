package spreadsheet

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "gridcalc"

// Metrics collects recalculation statistics. a nil *Metrics records nothing,
// so the engine can call it unconditionally.
type Metrics struct {
	cellWrites          *prometheus.CounterVec
	recalculations      prometheus.Counter
	cellsEvaluated      prometheus.Counter
	cyclesDetected      prometheus.Counter
	recalculationLength prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cellWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cell_writes_total",
			Help:      "Cell writes by resulting content kind.",
		}, []string{"kind"}),
		recalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "recalculations_total",
			Help:      "Completed recalculation passes.",
		}),
		cellsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cells_evaluated_total",
			Help:      "Formula cells evaluated during recalculation.",
		}),
		cyclesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cycles_detected_total",
			Help:      "Recalculation passes abandoned because of a dependency cycle.",
		}),
		recalculationLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "recalculation_duration_seconds",
			Help:      "Duration of recalculation passes.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.cellWrites,
			m.recalculations,
			m.cellsEvaluated,
			m.cyclesDetected,
			m.recalculationLength,
		)
	}
	return m
}

func (m *Metrics) recordWrite(kind ContentKind) {
	if m == nil {
		return
	}
	m.cellWrites.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) recordRecalculation(duration time.Duration, evaluated int) {
	if m == nil {
		return
	}
	m.recalculations.Inc()
	m.cellsEvaluated.Add(float64(evaluated))
	m.recalculationLength.Observe(duration.Seconds())
}

func (m *Metrics) recordCycle() {
	if m == nil {
		return
	}
	m.cyclesDetected.Inc()
}
