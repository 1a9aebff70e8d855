// File: sampler.go
// Role: cluster-or-noise coordinate draw.

package static

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/pubweb/geometry"
)

// ClusterSampler draws node coordinates biased toward a fixed set of dense
// areas. It holds no state besides its areas and source, so two samplers
// sharing a Source interleave their draws.
type ClusterSampler struct {
	areas []DenseArea
	rng   Source
}

// NewClusterSampler returns a sampler over a copy of areas.
// Panics on a nil rng.
func NewClusterSampler(areas []DenseArea, rng Source) *ClusterSampler {
	if rng == nil {
		panic("static: NewClusterSampler(nil rng)")
	}
	cp := make([]DenseArea, len(areas))
	copy(cp, areas)

	return &ClusterSampler{areas: cp, rng: rng}
}

// Sample draws one coordinate in [0,1)×[0,1).
//
// An index is drawn uniformly from {0..k}. An index below k picks that dense
// area: angle ~ U[0,2π), distance ~ U[0,radius), offset from the centre and
// wrapped. Index k is noise: both axes ~ U[0,1). With no areas every draw is
// noise.
func (s *ClusterSampler) Sample() r2.Vec {
	k := len(s.areas)
	idx := s.rng.Intn(k + 1)
	if idx == k {
		x := s.rng.Float64()
		y := s.rng.Float64()
		return r2.Vec{X: x, Y: y}
	}

	area := s.areas[idx]
	angle := s.rng.Float64() * 2 * math.Pi
	dist := s.rng.Float64() * area.Radius
	p := r2.Add(area.Center, r2.Vec{X: dist * math.Cos(angle), Y: dist * math.Sin(angle)})

	return geometry.Wrapped(p)
}

// Areas returns a copy of the sampler's dense areas.
func (s *ClusterSampler) Areas() []DenseArea {
	cp := make([]DenseArea, len(s.areas))
	copy(cp, s.areas)
	return cp
}
