package stream_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
	"github.com/katalvlaran/pubweb/stream"
)

// twoSteps is a small stream: a snapshot step, then a churn step that drops
// node 2 and adds node 3.
func twoSteps() ([]event.GraphEvent, []event.GraphEvent) {
	first := []event.GraphEvent{
		event.AddNode(0), event.AddNode(1), event.AddNode(2),
		event.AddEdge(0, 1, 0.5), event.AddEdge(1, 2, 2),
		event.Step(),
	}
	second := []event.GraphEvent{
		event.RemoveEdge(2, 1), event.RemoveNode(2), event.AddNode(3),
		event.Step(),
	}
	return first, second
}

func TestDGSWriter_Golden(t *testing.T) {
	first, second := twoSteps()
	var buf bytes.Buffer
	w := stream.NewDGSWriter(&buf, "golden")

	require.NoError(t, w.Write(first, nil))
	require.NoError(t, w.Write(second, map[core.NodeID]r2.Vec{3: {X: 0.25, Y: 0.75}}))
	require.NoError(t, w.Flush())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "dgs_basic", buf.Bytes())
}

func TestDGSWriter_HeaderOnlyOnce(t *testing.T) {
	var buf bytes.Buffer
	w := stream.NewDGSWriter(&buf, "x")
	require.NoError(t, w.Write(nil, nil))
	require.NoError(t, w.Write([]event.GraphEvent{event.Step()}, nil))
	require.NoError(t, w.Flush())

	assert.Equal(t, "DGS004\n\"x\" 0 0\nst 1\n", buf.String())
	require.ErrorIs(t, w.Write([]event.GraphEvent{{}}, nil), event.ErrUnknownType)
}
