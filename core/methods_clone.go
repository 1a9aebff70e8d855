// File: methods_clone.go
// Role: Deep copies and summaries.

package core

import "gonum.org/v1/gonum/spatial/r2"

// Clone returns a deep copy of g: nodes, coordinates, edges, the live index
// order and the id counter. Mutating the clone never affects g.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := NewGraph(WithNodeCapacity(len(g.live)))
	c.nextID = g.nextID
	c.edgeCount = g.edgeCount
	c.live = append(c.live, g.live...)
	for id, i := range g.slot {
		c.slot[id] = i
	}
	for id, pos := range g.coords {
		c.coords[id] = pos
	}
	for id, nbrs := range g.adj {
		cp := make(map[NodeID]float64, len(nbrs))
		for nb, w := range nbrs {
			cp[nb] = w
		}
		c.adj[id] = cp
	}

	return c
}

// Clear removes every node and edge. The id counter is kept so ids stay unique
// for the lifetime of the Graph.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.coords = make(map[NodeID]r2.Vec)
	g.live = g.live[:0]
	g.slot = make(map[NodeID]int)
	g.adj = make(map[NodeID]map[NodeID]float64)
	g.edgeCount = 0
}

// Stats returns a snapshot of node/edge counts and degree figures.
// Complexity: O(V).
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := GraphStats{
		Nodes:            len(g.live),
		Edges:            g.edgeCount,
		UpperNodeIDBound: g.nextID,
	}
	for _, nbrs := range g.adj {
		d := len(nbrs)
		if d > s.MaxDegree {
			s.MaxDegree = d
		}
		if d == 0 {
			s.Isolated++
		}
	}
	if s.Nodes > 0 {
		s.MeanDegree = 2 * float64(s.Edges) / float64(s.Nodes)
	}

	return s
}
