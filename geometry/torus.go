// Package geometry implements the wrap-around metric of the unit torus
// [0,1)×[0,1) that every spatial generator in this module places nodes on.
//
// Coordinates are gonum r2.Vec values. Along each axis the distance between
// a and b is min(|a-b|, 1-|a-b|), so points near 0 and near 1 are neighbours.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SquaredToroidalDistance returns the squared wrap-around distance between a and b.
// Both inputs are expected to lie in the unit square.
// Complexity: O(1).
func SquaredToroidalDistance(a, b r2.Vec) float64 {
	dx := axisDistance(a.X, b.X)
	dy := axisDistance(a.Y, b.Y)

	return dx*dx + dy*dy
}

// ToroidalDistance returns the wrap-around Euclidean distance between a and b.
func ToroidalDistance(a, b r2.Vec) float64 {
	return math.Sqrt(SquaredToroidalDistance(a, b))
}

// axisDistance is the one-dimensional distance on a circle of circumference 1.
func axisDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if alt := 1 - d; alt < d {
		return alt
	}

	return d
}

// Wrap reduces p modulo 1 on both axes, in place, so it lies in [0,1)×[0,1).
func Wrap(p *r2.Vec) {
	p.X = wrapUnit(p.X)
	p.Y = wrapUnit(p.Y)
}

// Wrapped is the value form of Wrap.
func Wrapped(p r2.Vec) r2.Vec {
	Wrap(&p)
	return p
}

// InUnitSquare reports whether p lies in [0,1)×[0,1).
func InUnitSquare(p r2.Vec) bool {
	return p.X >= 0 && p.X < 1 && p.Y >= 0 && p.Y < 1
}

// wrapUnit maps x into [0,1). Tiny negative inputs can round up to exactly 1
// after the shift, which is folded back to 0.
func wrapUnit(x float64) float64 {
	x = math.Mod(x, 1)
	if x < 0 {
		x++
	}
	if x >= 1 {
		x = 0
	}

	return x
}
