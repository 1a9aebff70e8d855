// SPDX-License-Identifier: MIT
// Package: pubweb/static
//
// generator.go: validated parameters, dense areas and the initial graph.

package static

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
)

// Generator produces the initial clustered graph. Its dense areas are fixed
// at construction, so the dynamic generator can keep sampling from the same
// distribution after Generate returns.
type Generator struct {
	numNodes     int
	numAreas     int
	radius       float64
	maxNeighbors int

	areas   []DenseArea
	sampler *ClusterSampler
	weights WeightPolicy
	rng     Source
	logger  *zap.Logger
}

// New validates the parameters and chooses the dense areas.
//
// Unless WithDenseAreas is given, each area gets a uniform centre in the unit
// square and a radius drawn from [minAreaRadius, maxAreaRadius).
//
// Errors: ErrTooFewNodes, ErrTooFewAreas, ErrBadRadius, ErrBadMaxNeighbors,
// ErrNeedRandSource, ErrAreaMismatch.
func New(numNodes, numberOfDenseAreas int, neighborhoodRadius float64, maxNumberOfNeighbors int, opts ...Option) (*Generator, error) {
	if numNodes < 1 {
		return nil, fmt.Errorf("%s: numNodes=%d: %w", methodNew, numNodes, ErrTooFewNodes)
	}
	if numberOfDenseAreas < 0 {
		return nil, fmt.Errorf("%s: numberOfDenseAreas=%d: %w", methodNew, numberOfDenseAreas, ErrTooFewAreas)
	}
	if numberOfDenseAreas >= numNodes {
		return nil, fmt.Errorf("%s: numberOfDenseAreas=%d >= numNodes=%d: %w",
			methodNew, numberOfDenseAreas, numNodes, ErrTooFewNodes)
	}
	if !(neighborhoodRadius > 0) || math.IsInf(neighborhoodRadius, 0) {
		return nil, fmt.Errorf("%s: radius=%v: %w", methodNew, neighborhoodRadius, ErrBadRadius)
	}
	if maxNumberOfNeighbors < 1 {
		return nil, fmt.Errorf("%s: maxNeighbors=%d: %w", methodNew, maxNumberOfNeighbors, ErrBadMaxNeighbors)
	}

	cfg := newConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodNew, ErrNeedRandSource)
	}

	areas := cfg.areas
	if areas == nil {
		areas = chooseDenseAreas(numberOfDenseAreas, cfg.minAreaRadius, cfg.maxAreaRadius, cfg.rng)
	} else if err := checkAreas(areas, numberOfDenseAreas); err != nil {
		return nil, fmt.Errorf("%s: %w", methodNew, err)
	}

	cfg.logger.Debug("dense areas chosen",
		zap.Int("areas", len(areas)),
		zap.Int("nodes", numNodes),
		zap.Float64("radius", neighborhoodRadius),
		zap.Int("max_neighbors", maxNumberOfNeighbors),
	)

	return &Generator{
		numNodes:     numNodes,
		numAreas:     numberOfDenseAreas,
		radius:       neighborhoodRadius,
		maxNeighbors: maxNumberOfNeighbors,
		areas:        areas,
		sampler:      NewClusterSampler(areas, cfg.rng),
		weights:      cfg.weights,
		rng:          cfg.rng,
		logger:       cfg.logger,
	}, nil
}

// chooseDenseAreas draws k areas with uniform centres and radii in [minR, maxR).
func chooseDenseAreas(k int, minR, maxR float64, rng Source) []DenseArea {
	areas := make([]DenseArea, k)
	for i := range areas {
		x := rng.Float64()
		y := rng.Float64()
		areas[i] = DenseArea{
			Center: r2.Vec{X: x, Y: y},
			Radius: minR + rng.Float64()*(maxR-minR),
		}
	}

	return areas
}

func checkAreas(areas []DenseArea, want int) error {
	if len(areas) != want {
		return fmt.Errorf("got %d areas, want %d: %w", len(areas), want, ErrAreaMismatch)
	}
	for i, a := range areas {
		if !(a.Radius > 0) || math.IsInf(a.Radius, 0) {
			return fmt.Errorf("area %d radius=%v: %w", i, a.Radius, ErrAreaMismatch)
		}
	}

	return nil
}

// Generate builds a fresh graph of NumNodes nodes.
//
// Steps:
//  1. Place every node with the cluster sampler (ids 0..n-1).
//  2. For each node in id order, link it to up to MaxNeighbors of its nearest
//     nodes within the radius, skipping pairs already linked.
//
// The neighbourhood is one-sided here: u may link to v while v's own nearest
// set excludes u. Each call advances the Source, so successive calls differ.
// Complexity: O(n² log k).
func (g *Generator) Generate() (*core.Graph, error) {
	out := core.NewGraph(core.WithNodeCapacity(g.numNodes))
	for i := 0; i < g.numNodes; i++ {
		out.AddNode(g.sampler.Sample())
	}

	pts := out.Points()
	sq := g.radius * g.radius
	for i, p := range pts {
		for _, nb := range Nearest(pts, i, sq, g.maxNeighbors) {
			if out.HasEdge(p.ID, nb.ID) {
				continue
			}
			if err := out.AddEdge(p.ID, nb.ID, g.weights.Weight(nb.SquaredDistance)); err != nil {
				return nil, fmt.Errorf("%s: edge %d-%d: %w", methodGenerate, p.ID, nb.ID, err)
			}
		}
	}

	g.logger.Debug("static graph generated",
		zap.Int("nodes", out.NodeCount()),
		zap.Int("edges", out.EdgeCount()),
	)

	return out, nil
}

// DenseAreas returns a copy of the dense areas.
func (g *Generator) DenseAreas() []DenseArea {
	cp := make([]DenseArea, len(g.areas))
	copy(cp, g.areas)
	return cp
}

// NumDenseAreas returns k.
func (g *Generator) NumDenseAreas() int { return g.numAreas }

// NeighborhoodRadius returns the linking radius.
func (g *Generator) NeighborhoodRadius() float64 { return g.radius }

// MaxNeighbors returns the per-node neighbour cap.
func (g *Generator) MaxNeighbors() int { return g.maxNeighbors }

// NumNodes returns the node count Generate produces.
func (g *Generator) NumNodes() int { return g.numNodes }

// Sampler returns the cluster sampler bound to this generator's areas and Source.
func (g *Generator) Sampler() *ClusterSampler { return g.sampler }

// Weights returns the edge weight policy.
func (g *Generator) Weights() WeightPolicy { return g.weights }

// Source returns the random source shared with the sampler.
func (g *Generator) Source() Source { return g.rng }
