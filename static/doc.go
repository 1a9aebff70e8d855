// Package static generates the initial spatially clustered graph that the
// dynamic generator evolves, and hosts the pieces both generators share.
//
// The model places numNodes nodes on the unit torus. A node is drawn either
// inside one of k circular dense areas (uniform angle, uniform distance up to
// the area radius) or, with probability 1/(k+1), uniformly anywhere ("noise").
// Each node is then linked to at most maxNeighbors of its nearest nodes within
// the neighbourhood radius; edge weight is inversely proportional to the
// squared toroidal distance.
//
// Components:
//
//   - Generator:      validated parameters, dense areas, Generate() -> *core.Graph.
//   - ClusterSampler: the cluster-or-noise coordinate draw.
//   - Nearest:        bounded max-heap k-nearest selection within a radius.
//   - WeightPolicy:   base/d² weights with a minimum-distance clamp.
//
// Determinism:
//
//	All randomness flows through the Source given by WithSeed or WithRand.
//	Equal parameters, options and seed produce identical graphs.
//
// Errors (sentinel, wrapped with the method name):
//
//	ErrTooFewNodes      numNodes < 1, or numberOfDenseAreas >= numNodes
//	ErrTooFewAreas      numberOfDenseAreas < 0
//	ErrBadRadius        neighbourhood radius <= 0, NaN or Inf
//	ErrBadMaxNeighbors  maxNeighbors < 1
//	ErrNeedRandSource   no Source configured
//	ErrAreaMismatch     WithDenseAreas disagrees with numberOfDenseAreas
package static
