// File: options.go
// Role: functional options for the dynamic generator.
//
// Fractions and weights are validated by New and reported as errors, since
// they usually arrive from configuration files. Options with no sensible
// meaning for nil (logger, source, metrics) panic at construction.

package dynamic

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/pubweb/static"
)

// Option customizes a Generator.
type Option func(*config)

type config struct {
	snapshot       bool
	rng            static.Source
	deleteFraction float64
	insertFraction float64

	baseWeight, minSquaredDistance       float64
	hasBaseWeight, hasMinSquaredDistance bool

	logger     *zap.Logger
	metrics    *Metrics
	staticOpts []static.Option
}

func newConfig(opts ...Option) config {
	cfg := config{
		deleteFraction: DefaultChurnFraction,
		insertFraction: DefaultChurnFraction,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithInitialSnapshot makes the first Generate call start with the full
// initial graph as additions, closed by one TimeStep.
func WithInitialSnapshot(on bool) Option {
	return func(c *config) { c.snapshot = on }
}

// WithSeed seeds a new *rand.Rand shared by the static and dynamic stages.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand uses r for every draw. Panics on nil.
func WithRand(r static.Source) Option {
	if r == nil {
		panic("dynamic: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithDeleteFraction sets the share of live nodes deleted per step.
func WithDeleteFraction(f float64) Option {
	return func(c *config) { c.deleteFraction = f }
}

// WithInsertFraction sets the share of live nodes inserted per step.
func WithInsertFraction(f float64) Option {
	return func(c *config) { c.insertFraction = f }
}

// WithChurnFraction sets both delete and insert fractions, keeping the
// expected node count stable.
func WithChurnFraction(f float64) Option {
	return func(c *config) { c.deleteFraction, c.insertFraction = f, f }
}

// WithBaseWeight sets the numerator of the edge weight formula.
func WithBaseWeight(w float64) Option {
	return func(c *config) { c.baseWeight, c.hasBaseWeight = w, true }
}

// WithMinSquaredDistance sets the floor applied to d² before dividing.
func WithMinSquaredDistance(d2 float64) Option {
	return func(c *config) { c.minSquaredDistance, c.hasMinSquaredDistance = d2, true }
}

// WithLogger attaches a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("dynamic: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithMetrics records events and step timings into m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("dynamic: WithMetrics(nil)")
	}
	return func(c *config) { c.metrics = m }
}

// WithStaticOptions forwards opts to the static generator built by New.
// NewFromGenerator ignores them.
func WithStaticOptions(opts ...static.Option) Option {
	return func(c *config) { c.staticOpts = append(c.staticOpts, opts...) }
}
