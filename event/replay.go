// File: replay.go
// Role: apply event streams to a graph and summarise them.

package event

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
)

const (
	methodApply  = "Apply"
	methodReplay = "Replay"
)

// Apply performs a single event on g. NodeAddition uses pos[u] when present
// and the origin otherwise; TimeStep is a no-op.
//
// Errors: ErrUnknownType, or the core error of the failed mutation.
func Apply(g *core.Graph, ev GraphEvent, pos map[core.NodeID]r2.Vec) error {
	var err error
	switch ev.Type {
	case NodeAddition:
		err = g.AddNodeWithID(ev.U, pos[ev.U])
	case NodeRemoval:
		err = g.RemoveNode(ev.U)
	case EdgeAddition:
		err = g.AddEdge(ev.U, ev.V, ev.Weight)
	case EdgeRemoval:
		err = g.RemoveEdge(ev.U, ev.V)
	case TimeStep:
	default:
		err = ErrUnknownType
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", methodApply, ev, err)
	}

	return nil
}

// Replay applies events in order and returns the number of TimeStep markers
// seen. It stops at the first failing event; the index is in the error.
//
// Replaying a generator's full stream (snapshot included) onto an empty graph
// reproduces the generator's final nodes, edges and weights.
func Replay(g *core.Graph, events []GraphEvent, pos map[core.NodeID]r2.Vec) (int, error) {
	steps := 0
	for i, ev := range events {
		if err := Apply(g, ev, pos); err != nil {
			return steps, fmt.Errorf("%s: event %d: %w", methodReplay, i, err)
		}
		if ev.Type == TimeStep {
			steps++
		}
	}

	return steps, nil
}

// Counts tallies events by type.
type Counts struct {
	NodeAdditions int
	NodeRemovals  int
	EdgeAdditions int
	EdgeRemovals  int
	TimeSteps     int
}

// Count tallies events by type. Unknown types are ignored.
func Count(events []GraphEvent) Counts {
	var c Counts
	for _, ev := range events {
		switch ev.Type {
		case NodeAddition:
			c.NodeAdditions++
		case NodeRemoval:
			c.NodeRemovals++
		case EdgeAddition:
			c.EdgeAdditions++
		case EdgeRemoval:
			c.EdgeRemovals++
		case TimeStep:
			c.TimeSteps++
		}
	}

	return c
}

// Total returns the number of counted events.
func (c Counts) Total() int {
	return c.NodeAdditions + c.NodeRemovals + c.EdgeAdditions + c.EdgeRemovals + c.TimeSteps
}

// SplitSteps cuts events into steps, each ending with its TimeStep marker.
// Trailing events without a closing marker form a final partial step.
// The returned slices alias events.
func SplitSteps(events []GraphEvent) [][]GraphEvent {
	var out [][]GraphEvent
	start := 0
	for i, ev := range events {
		if ev.Type == TimeStep {
			out = append(out, events[start:i+1])
			start = i + 1
		}
	}
	if start < len(events) {
		out = append(out, events[start:])
	}

	return out
}
