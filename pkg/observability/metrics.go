package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/turing/pkg/domain"
)

// Metrics records run outcomes from lifecycle hooks.
type Metrics struct {
	runs         *prometheus.CounterVec
	steps        prometheus.Histogram
	tapeCells    prometheus.Histogram
	limitReached prometheus.Counter
	transitions  prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil registerer leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs by final status",
			},
			[]string{"status"},
		),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_run_steps",
			Help:    "Transitions applied per run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		tapeCells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_tape_cells",
			Help:    "Tape length when a run ends",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		limitReached: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_step_limit_exceeded_total",
			Help: "Runs stopped by the step limit before halting",
		}),
		transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_transitions_total",
			Help: "Transitions applied across all runs",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.runs, m.steps, m.tapeCells, m.limitReached, m.transitions} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, _ *domain.StepEvent) {
			m.transitions.Inc()
		},
		OnHalt: func(_ context.Context, e *domain.HaltEvent) {
			if e.Limited {
				m.limitReached.Inc()
				return
			}
			m.runs.WithLabelValues(e.Status.String()).Inc()
			m.steps.Observe(float64(e.Steps))
			m.tapeCells.Observe(float64(e.TapeLen))
		},
	}
}
