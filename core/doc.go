// Package core provides the thread-safe, in-memory spatial graph that the
// generators mutate and the event stream describes.
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Undirected, simple: no self-loops, no parallel edges.
//   - Weighted: every edge carries a finite float64 weight.
//   - Spatial: every node owns a 2D coordinate (gonum r2.Vec), normally in
//     the unit torus [0,1)×[0,1).
//   - Stable identifiers: NodeIDs are issued monotonically and never reused,
//     so an id named by a removal event can never alias a later node.
//   - Uniform sampling: a compact live-node index makes "pick a random live
//     node" O(1) regardless of how sparse the id space has become.
//
// Core Methods:
//
//	// Node lifecycle
//	AddNode(pos r2.Vec) NodeID                 // O(1) amortized
//	AddNodeWithID(id NodeID, pos r2.Vec) error // O(1) amortized, used by replay
//	RemoveNode(id NodeID) error                // O(deg(v)), cascades incident edges
//	HasNode(id NodeID) bool                    // O(1)
//	NodeAt(i int) (NodeID, error)              // O(1), i-th slot of the live index
//
//	// Edge lifecycle
//	AddEdge(u, v NodeID, w float64) error      // O(1) amortized
//	RemoveEdge(u, v NodeID) error              // O(1)
//	HasEdge(u, v NodeID) bool                  // O(1)
//	Weight(u, v NodeID) (float64, error)       // O(1)
//
//	// Queries (all sorted, deterministic)
//	Nodes() []NodeID                           // O(V log V)
//	Points() []Point                           // O(V log V)
//	Edges() []Edge                             // O(E log E)
//	Neighbors(id NodeID) ([]NodeID, error)     // O(d log d)
//
// Errors:
//
//	ErrNodeNotFound   – missing node
//	ErrNodeExists     – AddNodeWithID on a live id
//	ErrBadNodeID      – negative id
//	ErrEdgeNotFound   – missing edge
//	ErrEdgeExists     – parallel edge
//	ErrLoopNotAllowed – u == v
//	ErrBadWeight      – NaN or ±Inf weight
//	ErrIndexOutOfRange – NodeAt outside [0, NodeCount())
package core
