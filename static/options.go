// SPDX-License-Identifier: MIT
// Package: pubweb/static
//
// options.go: functional options for the static generator.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package static

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// Option customizes a Generator before its dense areas are chosen.
type Option func(*config)

// config aggregates every generator knob. Resolved once in New.
type config struct {
	rng           Source
	logger        *zap.Logger
	minAreaRadius float64
	maxAreaRadius float64
	weights       WeightPolicy
	areas         []DenseArea
}

// newConfig applies opts over deterministic defaults; last wins.
func newConfig(opts ...Option) config {
	cfg := config{
		logger:        zap.NewNop(),
		minAreaRadius: DefaultMinAreaRadius,
		maxAreaRadius: DefaultMaxAreaRadius,
		weights:       DefaultWeightPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand provides an explicit random source. Panics on nil.
func WithRand(r Source) Option {
	if r == nil {
		panic("static: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithLogger attaches a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("static: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithAreaRadius bounds the radius drawn for each dense area to [min, max).
// Panics unless 0 < min <= max.
func WithAreaRadius(min, max float64) Option {
	if !(min > 0) || max < min || math.IsInf(max, 0) {
		panic("static: WithAreaRadius requires 0 < min <= max")
	}
	return func(c *config) { c.minAreaRadius, c.maxAreaRadius = min, max }
}

// WithDenseAreas fixes the dense areas instead of drawing them. The number of
// areas must equal numberOfDenseAreas passed to New.
func WithDenseAreas(areas ...DenseArea) Option {
	cp := make([]DenseArea, len(areas))
	copy(cp, areas)
	return func(c *config) { c.areas = cp }
}

// WithWeightPolicy overrides the edge weight policy. Panics on an invalid policy.
func WithWeightPolicy(p WeightPolicy) Option {
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}
	return func(c *config) { c.weights = p }
}
