package core_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
)

// BenchmarkGraph_Churn measures a remove-random/add cycle on a 10k-node graph.
func BenchmarkGraph_Churn(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	g := core.NewGraph(core.WithNodeCapacity(10_000))
	for i := 0; i < 10_000; i++ {
		g.AddNode(r2.Vec{X: rng.Float64(), Y: rng.Float64()})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id, _ := g.NodeAt(rng.Intn(g.NodeCount()))
		_ = g.RemoveNode(id)
		g.AddNode(r2.Vec{X: rng.Float64(), Y: rng.Float64()})
	}
}

// BenchmarkGraph_Points measures the snapshot used by the neighbourhood scan.
func BenchmarkGraph_Points(b *testing.B) {
	g := core.NewGraph()
	for i := 0; i < 5_000; i++ {
		g.AddNode(r2.Vec{X: float64(i) / 5_000})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Points()
	}
}
