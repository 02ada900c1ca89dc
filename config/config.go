// Package config holds the file-backed settings of the verkle command.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/eth2030/verkleipa/crypto"
	"github.com/eth2030/verkleipa/log"
	"github.com/eth2030/verkleipa/metrics"
	"github.com/eth2030/verkleipa/verkle"
)

// Config is the YAML configuration of a tree build.
type Config struct {
	// Group names the prime-order group, e.g. ristretto255 or p256.
	Group string `yaml:"group"`
	// Exponent sets the node width to 2^Exponent.
	Exponent int `yaml:"exponent"`
	// Basis is "random" or "hashed".
	Basis string `yaml:"basis"`
	// Parallelism bounds concurrent block commitments; 0 means GOMAXPROCS.
	Parallelism int `yaml:"parallelism"`
	// ProofCacheSize is the per-tree proof LRU size; 0 disables it.
	ProofCacheSize int `yaml:"proofCacheSize"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"logLevel"`
	// Metrics enables Prometheus collectors.
	Metrics bool `yaml:"metrics"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	tree := verkle.DefaultConfig()
	return Config{
		Group:          crypto.Ristretto255,
		Exponent:       tree.Exponent,
		Basis:          tree.Basis,
		ProofCacheSize: tree.ProofCacheSize,
		LogLevel:       "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config: read")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if _, err := crypto.NewGroup(c.Group); err != nil {
		return errors.Wrap(err, "config")
	}
	if c.Exponent < 1 || c.Exponent > verkle.MaxExponent {
		return errors.Errorf("config: exponent %d not in [1, %d]", c.Exponent, verkle.MaxExponent)
	}
	switch c.Basis {
	case verkle.BasisRandom, verkle.BasisHashed:
	default:
		return errors.Errorf("config: unknown basis %q", c.Basis)
	}
	if c.Parallelism < 0 {
		return errors.Errorf("config: invalid parallelism: %d", c.Parallelism)
	}
	if c.ProofCacheSize < 0 {
		return errors.Errorf("config: invalid proof cache size: %d", c.ProofCacheSize)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// Tree converts c into a tree build configuration using logger and m.
func (c *Config) Tree(logger *log.Logger, m *metrics.Metrics) verkle.Config {
	return verkle.Config{
		Exponent:       c.Exponent,
		Basis:          c.Basis,
		Parallelism:    c.Parallelism,
		ProofCacheSize: c.ProofCacheSize,
		Logger:         logger,
		Metrics:        m,
	}
}
