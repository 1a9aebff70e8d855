package dynamic

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/pubweb/event"
)

// Metrics holds the Prometheus collectors a Generator updates. A nil
// *Metrics records nothing.
type Metrics struct {
	Events       *prometheus.CounterVec
	Steps        prometheus.Counter
	Nodes        prometheus.Gauge
	Edges        prometheus.Gauge
	StepDuration prometheus.Histogram
}

// NewMetrics creates the collectors under namespace and registers them on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Total number of emitted graph events",
			},
			[]string{"type"},
		),
		Steps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Total number of completed steps",
			},
		),
		Nodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "nodes",
				Help:      "Live nodes after the latest step",
			},
		),
		Edges: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "edges",
				Help:      "Edges after the latest step",
			},
		),
		StepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_duration_seconds",
				Help:      "Wall time of one churn and resolve step",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.Events, m.Steps, m.Nodes, m.Edges, m.StepDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeEvents(events []event.GraphEvent) {
	if m == nil {
		return
	}
	c := event.Count(events)
	m.Events.WithLabelValues(event.NodeAddition.String()).Add(float64(c.NodeAdditions))
	m.Events.WithLabelValues(event.NodeRemoval.String()).Add(float64(c.NodeRemovals))
	m.Events.WithLabelValues(event.EdgeAddition.String()).Add(float64(c.EdgeAdditions))
	m.Events.WithLabelValues(event.EdgeRemoval.String()).Add(float64(c.EdgeRemovals))
	m.Events.WithLabelValues(event.TimeStep.String()).Add(float64(c.TimeSteps))
}

func (m *Metrics) observeStep(d time.Duration, nodes, edges int) {
	if m == nil {
		return
	}
	m.Steps.Inc()
	m.StepDuration.Observe(d.Seconds())
	m.observeGraph(nodes, edges)
}

func (m *Metrics) observeGraph(nodes, edges int) {
	if m == nil {
		return
	}
	m.Nodes.Set(float64(nodes))
	m.Edges.Set(float64(edges))
}
