// File: knn.go
// Role: bounded k-nearest selection within a radius on the torus.
//
// A max-heap of size k keyed by squared distance keeps the k best candidates
// seen so far; a candidate enters only when it beats the current farthest.
// Complexity: O(n log k) per query.

package static

import (
	"container/heap"
	"sort"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/geometry"
)

// Neighbor is one selected nearby node.
type Neighbor struct {
	ID              core.NodeID
	SquaredDistance float64
}

// farthestFirst is a max-heap on SquaredDistance.
type farthestFirst []Neighbor

func (h farthestFirst) Len() int           { return len(h) }
func (h farthestFirst) Less(i, j int) bool { return h[i].SquaredDistance > h[j].SquaredDistance }
func (h farthestFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *farthestFirst) Push(x any)        { *h = append(*h, x.(Neighbor)) }
func (h *farthestFirst) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Nearest returns up to k points of pts nearest to pts[i] whose squared
// toroidal distance is at most sqRadius. pts[i] itself is never a candidate.
// The result is sorted by ascending distance, then id.
//
// Among candidates at equal distance the survivors depend on scan order,
// which is the order of pts.
func Nearest(pts []core.Point, i int, sqRadius float64, k int) []Neighbor {
	if k <= 0 || i < 0 || i >= len(pts) {
		return nil
	}
	origin := pts[i].Pos
	h := make(farthestFirst, 0, k)
	for j := range pts {
		if j == i {
			continue
		}
		d2 := geometry.SquaredToroidalDistance(origin, pts[j].Pos)
		if d2 > sqRadius {
			continue
		}
		if h.Len() < k {
			heap.Push(&h, Neighbor{ID: pts[j].ID, SquaredDistance: d2})
			continue
		}
		if d2 < h[0].SquaredDistance {
			h[0] = Neighbor{ID: pts[j].ID, SquaredDistance: d2}
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(a, b int) bool {
		if out[a].SquaredDistance != out[b].SquaredDistance {
			return out[a].SquaredDistance < out[b].SquaredDistance
		}
		return out[a].ID < out[b].ID
	})

	return out
}
