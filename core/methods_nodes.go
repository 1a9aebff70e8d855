// File: methods_nodes.go
// Role: Node lifecycle, coordinates and the live-node index.
//
// Determinism:
//   - Nodes() and Points() return ids sorted ascending.
//   - NodeAt(i) depends only on the history of AddNode/RemoveNode calls.
//
// Concurrency:
//   - Mutations under g.mu write lock, queries under read lock.
package core

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// AddNode inserts a new node at pos and returns its id.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(pos r2.Vec) NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.insertNode(id, pos)

	return id
}

// AddNodeWithID inserts a node under a caller-chosen id, as needed when
// replaying an event stream. The id counter advances past id so later
// AddNode calls never collide with it.
//
// Errors: ErrBadNodeID for id < 0, ErrNodeExists if id is live.
// Complexity: O(1) amortized.
func (g *Graph) AddNodeWithID(id NodeID, pos r2.Vec) error {
	if id < 0 {
		return ErrBadNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.slot[id]; ok {
		return ErrNodeExists
	}
	g.insertNode(id, pos)

	return nil
}

// insertNode registers id in every index. Caller holds g.mu.
func (g *Graph) insertNode(id NodeID, pos r2.Vec) {
	g.coords[id] = pos
	g.slot[id] = len(g.live)
	g.live = append(g.live, id)
	g.adj[id] = make(map[NodeID]float64)
	if id >= g.nextID {
		g.nextID = id + 1
	}
}

// RemoveNode deletes the node and every incident edge.
// Callers that must report each incident edge (the churn engine) remove the
// edges first; RemoveNode then only drops the node itself.
//
// Errors: ErrNodeNotFound.
// Complexity: O(deg(v)).
func (g *Graph) RemoveNode(id NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.slot[id]
	if !ok {
		return ErrNodeNotFound
	}
	for nb := range g.adj[id] {
		delete(g.adj[nb], id)
		g.edgeCount--
	}
	delete(g.adj, id)
	delete(g.coords, id)

	// swap-remove from the live index
	last := len(g.live) - 1
	moved := g.live[last]
	g.live[i] = moved
	g.slot[moved] = i
	g.live = g.live[:last]
	delete(g.slot, id)

	return nil
}

// HasNode reports whether id is live.
// Complexity: O(1).
func (g *Graph) HasNode(id NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.slot[id]

	return ok
}

// NodeCount returns the number of live nodes.
// Complexity: O(1).
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.live)
}

// UpperNodeIDBound returns the id the next AddNode will issue. Every id ever
// used is strictly below it.
func (g *Graph) UpperNodeIDBound() NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nextID
}

// NodeAt returns the live node stored in slot i of the live index.
// Drawing i uniformly from [0, NodeCount()) draws a uniformly random live node.
//
// Errors: ErrIndexOutOfRange.
// Complexity: O(1).
func (g *Graph) NodeAt(i int) (NodeID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if i < 0 || i >= len(g.live) {
		return 0, ErrIndexOutOfRange
	}

	return g.live[i], nil
}

// Nodes returns all live ids sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Nodes() []NodeID {
	g.mu.RLock()
	ids := make([]NodeID, len(g.live))
	copy(ids, g.live)
	g.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Points returns every live node with its coordinate, sorted by id.
// It is the snapshot the O(n²) neighbourhood scans iterate over, so the scan
// never touches the lock.
// Complexity: O(V log V).
func (g *Graph) Points() []Point {
	g.mu.RLock()
	pts := make([]Point, 0, len(g.live))
	for _, id := range g.live {
		pts = append(pts, Point{ID: id, Pos: g.coords[id]})
	}
	g.mu.RUnlock()

	sort.Slice(pts, func(i, j int) bool { return pts[i].ID < pts[j].ID })

	return pts
}

// Coordinate returns the position of id.
// Errors: ErrNodeNotFound.
func (g *Graph) Coordinate(id NodeID) (r2.Vec, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	pos, ok := g.coords[id]
	if !ok {
		return r2.Vec{}, ErrNodeNotFound
	}

	return pos, nil
}

// SetCoordinate moves id to pos. Edge weights are not recomputed.
// Errors: ErrNodeNotFound.
func (g *Graph) SetCoordinate(id NodeID, pos r2.Vec) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.coords[id]; !ok {
		return ErrNodeNotFound
	}
	g.coords[id] = pos

	return nil
}

// Degree returns the number of edges incident to id.
// Errors: ErrNodeNotFound.
func (g *Graph) Degree(id NodeID) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nbrs, ok := g.adj[id]
	if !ok {
		return 0, ErrNodeNotFound
	}

	return len(nbrs), nil
}

// Neighbors returns the ids adjacent to id, sorted ascending.
// Errors: ErrNodeNotFound.
// Complexity: O(d log d).
func (g *Graph) Neighbors(id NodeID) ([]NodeID, error) {
	g.mu.RLock()
	nbrs, ok := g.adj[id]
	if !ok {
		g.mu.RUnlock()
		return nil, ErrNodeNotFound
	}
	out := make([]NodeID, 0, len(nbrs))
	for nb := range nbrs {
		out = append(out, nb)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}
