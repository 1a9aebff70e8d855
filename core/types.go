// File: types.go
// Role: identifiers, edge keys, sentinel errors and the Graph struct.
//
// All Graph methods take the single sync.RWMutex; reads share it, mutations
// hold it exclusively.

package core

import (
	"errors"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a node that is not live.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrNodeExists indicates AddNodeWithID was called with a live id.
	ErrNodeExists = errors.New("core: node already exists")

	// ErrBadNodeID indicates a negative node id.
	ErrBadNodeID = errors.New("core: negative node id")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrEdgeExists indicates a second edge between the same endpoints.
	ErrEdgeExists = errors.New("core: edge already exists")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrBadWeight indicates a NaN or infinite edge weight.
	ErrBadWeight = errors.New("core: weight must be finite")

	// ErrIndexOutOfRange indicates NodeAt was asked for a slot outside the live index.
	ErrIndexOutOfRange = errors.New("core: live index out of range")
)

// NodeID identifies a node. IDs are issued from 0 upward and never reused.
type NodeID int

// EdgeKey is the canonical form of an undirected edge: U < V.
type EdgeKey struct {
	U, V NodeID
}

// Key returns the canonical EdgeKey for the unordered pair {u, v}.
func Key(u, v NodeID) EdgeKey {
	if u > v {
		u, v = v, u
	}
	return EdgeKey{U: u, V: v}
}

// Less orders keys lexicographically by (U, V).
func (k EdgeKey) Less(o EdgeKey) bool {
	if k.U != o.U {
		return k.U < o.U
	}
	return k.V < o.V
}

// Edge is an undirected weighted edge in canonical orientation (U < V).
type Edge struct {
	U, V   NodeID
	Weight float64
}

// Key returns the canonical key of e.
func (e Edge) Key() EdgeKey { return EdgeKey{U: e.U, V: e.V} }

// Point pairs a live node with its coordinate.
type Point struct {
	ID  NodeID
	Pos r2.Vec
}

// GraphStats is a read-only summary of a Graph.
type GraphStats struct {
	Nodes            int     // live nodes
	Edges            int     // undirected edges
	UpperNodeIDBound NodeID  // next id to be issued
	MeanDegree       float64 // 2E/V, 0 for an empty graph
	MaxDegree        int
	Isolated         int // live nodes with degree 0
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithNodeCapacity pre-sizes the node storage for n nodes.
func WithNodeCapacity(n int) GraphOption {
	if n < 0 {
		panic("core: WithNodeCapacity(n<0)")
	}
	return func(g *Graph) { g.capacity = n }
}

// Graph is the in-memory spatial graph.
//
// live is a compact array of live ids and slot maps each live id to its index
// in live; removal swaps the last element into the vacated slot, so both stay
// O(1) and NodeAt can sample uniformly.
type Graph struct {
	mu sync.RWMutex

	capacity int

	nextID    NodeID
	coords    map[NodeID]r2.Vec
	live      []NodeID
	slot      map[NodeID]int
	adj       map[NodeID]map[NodeID]float64
	edgeCount int
}

// NewGraph creates an empty Graph.
// Complexity: O(capacity).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	g.coords = make(map[NodeID]r2.Vec, g.capacity)
	g.live = make([]NodeID, 0, g.capacity)
	g.slot = make(map[NodeID]int, g.capacity)
	g.adj = make(map[NodeID]map[NodeID]float64, g.capacity)

	return g
}
