package dynamic_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pubweb/dynamic"
	"github.com/katalvlaran/pubweb/event"
)

func TestMetrics_TrackSteps(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := dynamic.NewMetrics(reg, "pubweb")
	require.NoError(t, err)

	gen, err := dynamic.New(80, 3, 0.1, 3,
		dynamic.WithSeed(12), dynamic.WithMetrics(m), dynamic.WithInitialSnapshot(true))
	require.NoError(t, err)

	events, err := gen.Generate(3)
	require.NoError(t, err)
	c := event.Count(events)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Steps))
	assert.Equal(t, float64(c.NodeRemovals), testutil.ToFloat64(m.Events.WithLabelValues("node_removal")))
	assert.Equal(t, float64(c.NodeAdditions), testutil.ToFloat64(m.Events.WithLabelValues("node_addition")))
	assert.Equal(t, float64(c.EdgeAdditions), testutil.ToFloat64(m.Events.WithLabelValues("edge_addition")))
	assert.Equal(t, float64(c.TimeSteps), testutil.ToFloat64(m.Events.WithLabelValues("time_step")))

	g := gen.Graph()
	assert.Equal(t, float64(g.NodeCount()), testutil.ToFloat64(m.Nodes))
	assert.Equal(t, float64(g.EdgeCount()), testutil.ToFloat64(m.Edges))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StepDuration))

	// a second set under the same namespace collides
	_, err = dynamic.NewMetrics(reg, "pubweb")
	require.Error(t, err)
}
