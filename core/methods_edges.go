// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Weight/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges in canonical orientation sorted by (U, V).
// Concurrency:
//   - Mutations under g.mu write lock, queries under read lock.

package core

import (
	"math"
	"sort"
)

// AddEdge inserts the undirected edge {u, v} with weight w.
//
// Steps:
//  1. Reject self-loops and non-finite weights.
//  2. Lock, check both endpoints are live.
//  3. Reject a second edge between the same endpoints.
//  4. Mirror into both adjacency buckets.
//
// Errors: ErrLoopNotAllowed, ErrBadWeight, ErrNodeNotFound, ErrEdgeExists.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v NodeID, w float64) error {
	if u == v {
		return ErrLoopNotAllowed
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return ErrBadWeight
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	au, okU := g.adj[u]
	av, okV := g.adj[v]
	if !okU || !okV {
		return ErrNodeNotFound
	}
	if _, dup := au[v]; dup {
		return ErrEdgeExists
	}
	au[v] = w
	av[u] = w
	g.edgeCount++

	return nil
}

// RemoveEdge deletes the edge {u, v}.
// Errors: ErrEdgeNotFound (also when either endpoint is not live).
// Complexity: O(1).
func (g *Graph) RemoveEdge(u, v NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	au, ok := g.adj[u]
	if !ok {
		return ErrEdgeNotFound
	}
	if _, ok = au[v]; !ok {
		return ErrEdgeNotFound
	}
	delete(au, v)
	delete(g.adj[v], u)
	g.edgeCount--

	return nil
}

// HasEdge reports whether {u, v} is an edge.
// Complexity: O(1).
func (g *Graph) HasEdge(u, v NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adj[u][v]

	return ok
}

// Weight returns the weight of {u, v}.
// Errors: ErrEdgeNotFound.
func (g *Graph) Weight(u, v NodeID) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	w, ok := g.adj[u][v]
	if !ok {
		return 0, ErrEdgeNotFound
	}

	return w, nil
}

// EdgeCount returns the number of undirected edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Edges returns every edge once, in canonical orientation, sorted by (U, V).
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	out := make([]Edge, 0, g.edgeCount)
	for u, nbrs := range g.adj {
		for v, w := range nbrs {
			if u < v {
				out = append(out, Edge{U: u, V: v, Weight: w})
			}
		}
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key().Less(out[j].Key()) })

	return out
}
