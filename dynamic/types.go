package dynamic

import (
	"errors"
)

// Method tags used as error prefixes.
const (
	methodNew              = "New"
	methodNewFromGenerator = "NewFromGenerator"
	methodGenerate         = "Generate"
)

// DefaultChurnFraction is the default share of nodes deleted and inserted per step.
const DefaultChurnFraction = 0.05

// Sentinel errors.
var (
	// ErrBadFraction indicates a delete or insert fraction outside [0,1].
	ErrBadFraction = errors.New("dynamic: churn fraction must lie in [0,1]")

	// ErrBadStepCount indicates a negative step count.
	ErrBadStepCount = errors.New("dynamic: step count must be non-negative")

	// ErrBadWeightPolicy indicates a non-positive or non-finite weight parameter.
	ErrBadWeightPolicy = errors.New("dynamic: weight policy parameters must be positive and finite")

	// ErrNilGenerator indicates NewFromGenerator received a nil static generator.
	ErrNilGenerator = errors.New("dynamic: static generator is nil")
)
