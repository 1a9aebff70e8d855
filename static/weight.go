package static

import (
	"errors"
	"math"
)

// ErrBadWeightPolicy indicates a non-positive or non-finite weight parameter.
var ErrBadWeightPolicy = errors.New("static: weight policy parameters must be positive and finite")

// WeightPolicy turns a squared distance into an edge weight:
//
//	w = Base / max(d², MinSquaredDistance)
//
// Closer nodes get disproportionately larger weights. The floor keeps the
// weight finite for coincident nodes.
type WeightPolicy struct {
	Base               float64
	MinSquaredDistance float64
}

// DefaultWeightPolicy returns {DefaultBaseWeight, DefaultMinSquaredDistance}.
func DefaultWeightPolicy() WeightPolicy {
	return WeightPolicy{Base: DefaultBaseWeight, MinSquaredDistance: DefaultMinSquaredDistance}
}

// Validate reports ErrBadWeightPolicy unless both fields are positive and finite.
func (p WeightPolicy) Validate() error {
	if !(p.Base > 0) || math.IsInf(p.Base, 0) || !(p.MinSquaredDistance > 0) || math.IsInf(p.MinSquaredDistance, 0) {
		return ErrBadWeightPolicy
	}
	return nil
}

// Weight returns the weight for squared distance d2.
func (p WeightPolicy) Weight(d2 float64) float64 {
	if d2 < p.MinSquaredDistance {
		d2 = p.MinSquaredDistance
	}
	return p.Base / d2
}
