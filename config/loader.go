package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvSeed   = "PUBWEB_SEED"
	EnvSteps  = "PUBWEB_STEPS"
	EnvNodes  = "PUBWEB_NODES"
	EnvFormat = "PUBWEB_FORMAT"
	EnvOutput = "PUBWEB_OUTPUT"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads path (skipped when empty) over Default, applies the process
// environment and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment.
//
// Unknown YAML keys are rejected so typos do not silently fall back to
// defaults. An empty file leaves the defaults untouched.
func LoadWithEnv(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}

	return nil
}

// applyEnv overlays PUBWEB_* variables on cfg.
func applyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, v, err)
		}
		cfg.Seed = n
	}
	if v, ok := lookup(EnvSteps); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSteps, v, err)
		}
		cfg.Steps = n
	}
	if v, ok := lookup(EnvNodes); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvNodes, v, err)
		}
		cfg.Nodes = n
	}
	if v, ok := lookup(EnvFormat); ok {
		cfg.Output.Format = v
	}
	if v, ok := lookup(EnvOutput); ok {
		cfg.Output.Path = v
	}

	return nil
}
