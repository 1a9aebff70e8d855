// SPDX-License-Identifier: MIT
// Package: pubweb/static
//
// types.go: shared types, constants and sentinel errors.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context as "<Method>: <detail>: %w".
//   • Option constructors panic on meaningless values; algorithms never panic.

package static

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// Method tags used as error prefixes.
const (
	methodNew      = "New"
	methodGenerate = "Generate"
)

// Defaults (named, no magic numbers).
const (
	// DefaultBaseWeight scales every edge weight: w = base / d².
	DefaultBaseWeight = 0.01

	// DefaultMinSquaredDistance floors d² in the weight formula so that two
	// coincident nodes get a large finite weight instead of +Inf.
	DefaultMinSquaredDistance = 1e-12

	// DefaultMinAreaRadius and DefaultMaxAreaRadius bound the radius drawn for each dense area.
	DefaultMinAreaRadius = 0.05
	DefaultMaxAreaRadius = 0.15
)

// ErrTooFewNodes indicates numNodes < 1 or numberOfDenseAreas >= numNodes.
var ErrTooFewNodes = errors.New("static: too few nodes")

// ErrTooFewAreas indicates a negative number of dense areas.
var ErrTooFewAreas = errors.New("static: number of dense areas must be non-negative")

// ErrBadRadius indicates a non-positive or non-finite neighbourhood radius.
var ErrBadRadius = errors.New("static: neighborhood radius must be positive and finite")

// ErrBadMaxNeighbors indicates maxNeighbors < 1.
var ErrBadMaxNeighbors = errors.New("static: max neighbors must be at least 1")

// ErrNeedRandSource indicates no Source was configured (WithSeed/WithRand).
var ErrNeedRandSource = errors.New("static: rng is required")

// Source is the uniform random source the generators draw from.
// *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform integer in [0, n). n > 0.
	Intn(n int) int
	// Float64 returns a uniform real in [0, 1).
	Float64() float64
}

// DenseArea is a circular region that biases node placement.
type DenseArea struct {
	Center r2.Vec
	Radius float64
}

// ErrAreaMismatch indicates WithDenseAreas supplied a different number of
// areas than numberOfDenseAreas, or an area with a non-positive radius.
var ErrAreaMismatch = errors.New("static: explicit dense areas do not match parameters")
