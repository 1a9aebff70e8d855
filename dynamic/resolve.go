// File: resolve.go
// Role: mutual nearest-neighbour topology and the minimal edge diff.

package dynamic

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
	"github.com/katalvlaran/pubweb/geometry"
	"github.com/katalvlaran/pubweb/static"
)

// Eligibility counts, for every unordered pair, how many of its two endpoints
// list the other among their maxNeighbors nearest points within sqRadius.
// A count of 2 marks a mutual pair. Pairs never selected are absent.
// Complexity: O(n² log k).
func Eligibility(pts []core.Point, sqRadius float64, maxNeighbors int) map[core.EdgeKey]int {
	eligible := make(map[core.EdgeKey]int)
	for i, p := range pts {
		for _, nb := range static.Nearest(pts, i, sqRadius, maxNeighbors) {
			eligible[core.Key(p.ID, nb.ID)]++
		}
	}

	return eligible
}

// resolve brings the edge set in line with the mutual criterion.
//
// Removal pass: current edges in ascending canonical order; an edge with a
// count below 2 is removed and reported. Every visited edge leaves the map.
// Addition pass: the remaining pairs with count 2, ascending canonical order,
// weighted by the generator's WeightPolicy.
func (g *Generator) resolve(events []event.GraphEvent) ([]event.GraphEvent, int, int, error) {
	pts := g.graph.Points()
	eligible := Eligibility(pts, g.sqRadius, g.maxNeigh)

	removed := 0
	for _, e := range g.graph.Edges() {
		k := e.Key()
		if eligible[k] < 2 {
			if err := g.graph.RemoveEdge(e.U, e.V); err != nil {
				return events, 0, removed, fmt.Errorf("remove edge %d-%d: %w", e.U, e.V, err)
			}
			events = g.emit(events, event.RemoveEdge(e.U, e.V))
			removed++
		}
		delete(eligible, k)
	}

	keys := make([]core.EdgeKey, 0, len(eligible))
	for k, c := range eligible {
		if c >= 2 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	pos := make(map[core.NodeID]int, len(pts))
	for i, p := range pts {
		pos[p.ID] = i
	}
	for _, k := range keys {
		d2 := geometry.SquaredToroidalDistance(pts[pos[k.U]].Pos, pts[pos[k.V]].Pos)
		w := g.weights.Weight(d2)
		if err := g.graph.AddEdge(k.U, k.V, w); err != nil {
			return events, len(keys), removed, fmt.Errorf("add edge %d-%d: %w", k.U, k.V, err)
		}
		events = g.emit(events, event.AddEdge(k.U, k.V, w))
	}

	return events, len(keys), removed, nil
}
