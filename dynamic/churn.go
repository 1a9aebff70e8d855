// File: churn.go
// Role: node deletion with cascading edge removal, and node insertion.

package dynamic

import (
	"fmt"

	"github.com/katalvlaran/pubweb/event"
)

// deleteNodes removes up to count uniformly chosen live nodes.
//
// For each victim, every incident edge is removed and reported as
// EdgeRemoval(victim, neighbour) in ascending neighbour order, then the node
// itself as NodeRemoval. Deletions past the last live node are skipped.
func (g *Generator) deleteNodes(events []event.GraphEvent, count int) ([]event.GraphEvent, int, error) {
	deleted := 0
	for ; deleted < count; deleted++ {
		n := g.graph.NodeCount()
		if n == 0 {
			break
		}
		victim, err := g.graph.NodeAt(g.rng.Intn(n))
		if err != nil {
			return events, deleted, fmt.Errorf("pick victim: %w", err)
		}
		nbrs, err := g.graph.Neighbors(victim)
		if err != nil {
			return events, deleted, fmt.Errorf("neighbors of %d: %w", victim, err)
		}
		for _, nb := range nbrs {
			if err = g.graph.RemoveEdge(victim, nb); err != nil {
				return events, deleted, fmt.Errorf("remove edge %d-%d: %w", victim, nb, err)
			}
			events = g.emit(events, event.RemoveEdge(victim, nb))
		}
		if err = g.graph.RemoveNode(victim); err != nil {
			return events, deleted, fmt.Errorf("remove node %d: %w", victim, err)
		}
		events = g.emit(events, event.RemoveNode(victim))
	}

	return events, deleted, nil
}

// insertNodes adds count nodes drawn by the cluster sampler and records each
// coordinate in the overlay.
func (g *Generator) insertNodes(events []event.GraphEvent, count int) ([]event.GraphEvent, int) {
	for i := 0; i < count; i++ {
		pos := g.sampler.Sample()
		id := g.graph.AddNode(pos)
		g.newCoords[id] = pos
		events = g.emit(events, event.AddNode(id))
	}

	return events, count
}
