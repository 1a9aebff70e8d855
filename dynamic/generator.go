// SPDX-License-Identifier: MIT
// Package: pubweb/dynamic
//
// generator.go: construction, the Generate loop and accessors.

package dynamic

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/core"
	"github.com/katalvlaran/pubweb/event"
	"github.com/katalvlaran/pubweb/static"
)

// Generator evolves one graph. It is created once and driven by Generate.
type Generator struct {
	mu sync.Mutex

	static   *static.Generator
	graph    *core.Graph
	sampler  *static.ClusterSampler
	rng      static.Source
	weights  static.WeightPolicy
	sqRadius float64
	maxNeigh int

	deleteFraction float64
	insertFraction float64

	snapshot   bool
	firstCall  bool
	initial    map[core.NodeID]r2.Vec
	newCoords  map[core.NodeID]r2.Vec
	stepsSoFar int

	logger  *zap.Logger
	metrics *Metrics
}

// New builds the static generator from the given parameters and options,
// generates the initial graph and wraps it.
//
// The Source set by WithSeed or WithRand is forwarded to the static generator,
// so a single seed fixes the whole run. Without one, the static options must
// supply it.
//
// Errors: every static.New error, plus those of NewFromGenerator.
func New(numNodes, numberOfDenseAreas int, neighborhoodRadius float64, maxNumberOfNeighbors int, opts ...Option) (*Generator, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodNew, err)
	}

	sopts := append([]static.Option{static.WithLogger(cfg.logger)}, cfg.staticOpts...)
	if cfg.rng != nil {
		sopts = append(sopts, static.WithRand(cfg.rng))
	}
	if cfg.hasBaseWeight || cfg.hasMinSquaredDistance {
		weights, err := cfg.resolveWeights(static.DefaultWeightPolicy())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodNew, err)
		}
		sopts = append(sopts, static.WithWeightPolicy(weights))
	}

	sg, err := static.New(numNodes, numberOfDenseAreas, neighborhoodRadius, maxNumberOfNeighbors, sopts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodNew, err)
	}

	gen, err := newFromConfig(sg, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodNew, err)
	}

	return gen, nil
}

// NewFromGenerator wraps an existing static generator. Its Source is reused
// unless WithSeed or WithRand is given; its weight policy is the default for
// new edges.
//
// Errors: ErrNilGenerator, ErrBadFraction, ErrBadWeightPolicy, or a wrapped
// static Generate error.
func NewFromGenerator(sg *static.Generator, opts ...Option) (*Generator, error) {
	if sg == nil {
		return nil, fmt.Errorf("%s: %w", methodNewFromGenerator, ErrNilGenerator)
	}

	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodNewFromGenerator, err)
	}

	gen, err := newFromConfig(sg, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodNewFromGenerator, err)
	}

	return gen, nil
}

// newFromConfig generates the initial graph. cfg is already validated.
func newFromConfig(sg *static.Generator, cfg config) (*Generator, error) {
	weights, err := cfg.resolveWeights(sg.Weights())
	if err != nil {
		return nil, err
	}
	rng := cfg.rng
	if rng == nil {
		rng = sg.Source()
	}

	g, err := sg.Generate()
	if err != nil {
		return nil, err
	}
	initial := make(map[core.NodeID]r2.Vec, g.NodeCount())
	for _, p := range g.Points() {
		initial[p.ID] = p.Pos
	}

	r := sg.NeighborhoodRadius()
	gen := &Generator{
		static:         sg,
		graph:          g,
		sampler:        static.NewClusterSampler(sg.DenseAreas(), rng),
		rng:            rng,
		weights:        weights,
		sqRadius:       r * r,
		maxNeigh:       sg.MaxNeighbors(),
		deleteFraction: cfg.deleteFraction,
		insertFraction: cfg.insertFraction,
		snapshot:       cfg.snapshot,
		firstCall:      true,
		initial:        initial,
		newCoords:      make(map[core.NodeID]r2.Vec),
		logger:         cfg.logger,
		metrics:        cfg.metrics,
	}
	gen.metrics.observeGraph(g.NodeCount(), g.EdgeCount())

	return gen, nil
}

// validate checks the fractions and any explicitly set weight fields.
func (c config) validate() error {
	for _, f := range []float64{c.deleteFraction, c.insertFraction} {
		if !(f >= 0 && f <= 1) {
			return fmt.Errorf("fraction=%v: %w", f, ErrBadFraction)
		}
	}
	_, err := c.resolveWeights(static.DefaultWeightPolicy())

	return err
}

// resolveWeights overlays the configured weight fields onto base.
func (c config) resolveWeights(base static.WeightPolicy) (static.WeightPolicy, error) {
	p := base
	if c.hasBaseWeight {
		p.Base = c.baseWeight
	}
	if c.hasMinSquaredDistance {
		p.MinSquaredDistance = c.minSquaredDistance
	}
	if !(p.Base > 0) || math.IsInf(p.Base, 0) || !(p.MinSquaredDistance > 0) || math.IsInf(p.MinSquaredDistance, 0) {
		return p, fmt.Errorf("base=%v minSquaredDistance=%v: %w", p.Base, p.MinSquaredDistance, ErrBadWeightPolicy)
	}

	return p, nil
}

// Generate runs stepCount steps and returns every event they produced, in
// order. See GenerateContext.
func (g *Generator) Generate(stepCount int) ([]event.GraphEvent, error) {
	return g.GenerateContext(context.Background(), stepCount)
}

// GenerateContext is Generate with cancellation checked before each step.
// On cancellation it returns the events of the completed steps together with
// the context error; the graph reflects exactly those steps.
//
// The coordinate overlay (NewCoordinates) is reset at the start of the call.
//
// Errors: ErrBadStepCount, ctx.Err(), or a wrapped core error (a broken
// graph invariant).
func (g *Generator) GenerateContext(ctx context.Context, stepCount int) ([]event.GraphEvent, error) {
	if stepCount < 0 {
		return nil, fmt.Errorf("%s: stepCount=%d: %w", methodGenerate, stepCount, ErrBadStepCount)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.newCoords = make(map[core.NodeID]r2.Vec)

	var events []event.GraphEvent
	if g.firstCall {
		g.firstCall = false
		if g.snapshot {
			events = g.appendSnapshot(events)
			g.metrics.observeEvents(events)
		}
	}

	for i := 0; i < stepCount; i++ {
		if err := ctx.Err(); err != nil {
			return events, fmt.Errorf("%s: after %d of %d steps: %w", methodGenerate, i, stepCount, err)
		}
		var err error
		if events, err = g.step(events); err != nil {
			return events, fmt.Errorf("%s: step %d: %w", methodGenerate, g.stepsSoFar+1, err)
		}
	}

	return events, nil
}

// appendSnapshot emits the current graph as additions plus one TimeStep.
func (g *Generator) appendSnapshot(events []event.GraphEvent) []event.GraphEvent {
	for _, id := range g.graph.Nodes() {
		events = g.emit(events, event.AddNode(id))
	}
	for _, e := range g.graph.Edges() {
		events = g.emit(events, event.AddEdge(e.U, e.V, e.Weight))
	}
	g.logger.Info("initial snapshot emitted",
		zap.Int("nodes", g.graph.NodeCount()),
		zap.Int("edges", g.graph.EdgeCount()),
	)

	return g.emit(events, event.Step())
}

// stepSummary counts what one step did.
type stepSummary struct {
	deleted, inserted   int
	edgesAdded, removed int
}

// step runs churn, topology resolution and the closing TimeStep.
func (g *Generator) step(events []event.GraphEvent) ([]event.GraphEvent, error) {
	start := time.Now()
	mark := len(events)

	n := g.graph.NodeCount()
	numToDelete := int(math.Floor(float64(n) * g.deleteFraction))
	numToInsert := int(math.Floor(float64(n) * g.insertFraction))

	var sum stepSummary
	var err error
	if events, sum.deleted, err = g.deleteNodes(events, numToDelete); err != nil {
		return events, err
	}
	events, sum.inserted = g.insertNodes(events, numToInsert)
	if events, sum.edgesAdded, sum.removed, err = g.resolve(events); err != nil {
		return events, err
	}
	events = g.emit(events, event.Step())
	g.stepsSoFar++

	elapsed := time.Since(start)
	g.metrics.observeEvents(events[mark:])
	g.metrics.observeStep(elapsed, g.graph.NodeCount(), g.graph.EdgeCount())
	g.logger.Info("step completed",
		zap.Int("step", g.stepsSoFar),
		zap.Int("deleted", sum.deleted),
		zap.Int("inserted", sum.inserted),
		zap.Int("edges_added", sum.edgesAdded),
		zap.Int("edges_removed", sum.removed),
		zap.Int("nodes", g.graph.NodeCount()),
		zap.Int("edges", g.graph.EdgeCount()),
		zap.Duration("elapsed", elapsed),
	)

	return events, nil
}

// emit appends ev and traces it at debug level.
func (g *Generator) emit(events []event.GraphEvent, ev event.GraphEvent) []event.GraphEvent {
	if ce := g.logger.Check(zap.DebugLevel, "event"); ce != nil {
		ce.Write(zap.Stringer("event", ev))
	}
	return append(events, ev)
}

// NewCoordinates returns a copy of the coordinates of nodes inserted during
// the most recent Generate call, including nodes that the same call later
// deleted.
func (g *Generator) NewCoordinates() map[core.NodeID]r2.Vec {
	g.mu.Lock()
	defer g.mu.Unlock()

	return copyCoords(g.newCoords)
}

// InitialCoordinates returns a copy of the coordinates of the initial graph.
func (g *Generator) InitialCoordinates() map[core.NodeID]r2.Vec {
	return copyCoords(g.initial)
}

func copyCoords(m map[core.NodeID]r2.Vec) map[core.NodeID]r2.Vec {
	cp := make(map[core.NodeID]r2.Vec, len(m))
	for id, p := range m {
		cp[id] = p
	}
	return cp
}

// Graph returns a deep copy of the current graph.
func (g *Generator) Graph() *core.Graph {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.graph.Clone()
}

// Static returns the wrapped static generator.
func (g *Generator) Static() *static.Generator { return g.static }

// Weights returns the policy used for edges added by the resolver.
func (g *Generator) Weights() static.WeightPolicy { return g.weights }

// Steps returns how many steps have run across all Generate calls.
func (g *Generator) Steps() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stepsSoFar
}
