package observability

import (
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "actiongraph"

// Metrics holds the runtime collectors.
type Metrics struct {
	Signals       *prometheus.CounterVec
	Ticks         prometheus.Counter
	TickDuration  prometheus.Histogram
	UpdatingNodes prometheus.Gauge
	Interrupts    *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Entry point invocations that passed state gating.",
		}, []string{"kind", "entry"}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Completed scheduler passes.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one scheduler pass.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		UpdatingNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "updating_nodes",
			Help:      "Nodes currently registered for per-frame updates.",
		}),
		Interrupts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interrupts_total",
			Help:      "Nodes removed from the scheduler by an external authority.",
		}, []string{"kind"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "State machine transitions by target state.",
		}, []string{"to"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Signals, m.Ticks, m.TickDuration, m.UpdatingNodes, m.Interrupts, m.Transitions}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSignal: func(e *domain.SignalEvent) {
			m.Signals.WithLabelValues(e.Kind, e.Entry).Inc()
		},
		OnUpdate: func(e *domain.UpdateEvent) {
			m.UpdatingNodes.Set(float64(e.Registered))
			if e.Reason == domain.UpdateInterrupted {
				m.Interrupts.WithLabelValues(e.Kind).Inc()
			}
		},
		OnTick: func(e *domain.TickEvent) {
			m.Ticks.Inc()
			m.TickDuration.Observe(e.Took.Seconds())
		},
		OnTransition: func(e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.To).Inc()
		},
	}
}
