// Package config loads generator runs from YAML with environment overrides.
//
// Precedence, lowest first: Default(), the YAML file, PUBWEB_* variables.
// The merged result is checked with struct tags before use.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/katalvlaran/pubweb/dynamic"
	"github.com/katalvlaran/pubweb/static"
)

// ErrInvalidConfig wraps every load, parse and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Output formats.
const (
	FormatDGS    = "dgs"
	FormatJSONL  = "jsonl"
	FormatSQLite = "sqlite"
)

// Config describes one generator run.
type Config struct {
	Nodes              int     `yaml:"nodes" validate:"min=1"`
	DenseAreas         int     `yaml:"dense_areas" validate:"min=0,ltfield=Nodes"`
	Radius             float64 `yaml:"radius" validate:"gt=0,lte=1"`
	MaxNeighbors       int     `yaml:"max_neighbors" validate:"min=1"`
	Steps              int     `yaml:"steps" validate:"min=0"`
	Seed               int64   `yaml:"seed"`
	Snapshot           bool    `yaml:"snapshot"`
	DeleteFraction     float64 `yaml:"delete_fraction" validate:"min=0,max=1"`
	InsertFraction     float64 `yaml:"insert_fraction" validate:"min=0,max=1"`
	BaseWeight         float64 `yaml:"base_weight" validate:"gt=0"`
	MinSquaredDistance float64 `yaml:"min_squared_distance" validate:"gt=0"`
	Output             Output  `yaml:"output"`
}

// Output selects where events go.
type Output struct {
	Format      string `yaml:"format" validate:"oneof=dgs jsonl sqlite"`
	Path        string `yaml:"path" validate:"required_if=Format sqlite"`
	Name        string `yaml:"name"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns a complete, valid configuration.
func Default() *Config {
	return &Config{
		Nodes:              1000,
		DenseAreas:         10,
		Radius:             0.05,
		MaxNeighbors:       5,
		Steps:              10,
		Seed:               1,
		Snapshot:           true,
		DeleteFraction:     dynamic.DefaultChurnFraction,
		InsertFraction:     dynamic.DefaultChurnFraction,
		BaseWeight:         static.DefaultBaseWeight,
		MinSquaredDistance: static.DefaultMinSquaredDistance,
		Output: Output{
			Format: FormatDGS,
			Name:   "pubweb",
		},
	}
}

var validate = validator.New()

// Validate checks every field rule and reports all violations at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s fails %s (got %v)", fe.Namespace(), rule, fe.Value()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// GeneratorOptions converts c into dynamic generator options. logger and
// metrics may be nil.
func (c *Config) GeneratorOptions(logger *zap.Logger, metrics *dynamic.Metrics) []dynamic.Option {
	opts := []dynamic.Option{
		dynamic.WithSeed(c.Seed),
		dynamic.WithInitialSnapshot(c.Snapshot),
		dynamic.WithDeleteFraction(c.DeleteFraction),
		dynamic.WithInsertFraction(c.InsertFraction),
		dynamic.WithBaseWeight(c.BaseWeight),
		dynamic.WithMinSquaredDistance(c.MinSquaredDistance),
	}
	if logger != nil {
		opts = append(opts, dynamic.WithLogger(logger))
	}
	if metrics != nil {
		opts = append(opts, dynamic.WithMetrics(metrics))
	}

	return opts
}

// NewGenerator builds a dynamic generator from c.
func (c *Config) NewGenerator(logger *zap.Logger, metrics *dynamic.Metrics) (*dynamic.Generator, error) {
	return dynamic.New(c.Nodes, c.DenseAreas, c.Radius, c.MaxNeighbors, c.GeneratorOptions(logger, metrics)...)
}
