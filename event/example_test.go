package event_test

import (
	"fmt"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
)

func ExampleReplay() {
	stream := []event.GraphEvent{
		event.AddNode(0), event.AddNode(1), event.AddEdge(0, 1, 0.5), event.Step(),
		event.RemoveEdge(0, 1), event.RemoveNode(1), event.Step(),
	}
	g := core.NewGraph()
	steps, err := event.Replay(g, stream, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("steps:", steps, "nodes:", g.Nodes(), "edges:", g.EdgeCount())
	// Output:
	// steps: 2 nodes: [0] edges: 0
}
