package verkle

import (
	"runtime"

	"github.com/eth2030/verkleipa/log"
	"github.com/eth2030/verkleipa/metrics"
)

// Basis provenance for the commitment parameters of a tree.
const (
	// BasisRandom samples G and H uniformly at build time.
	BasisRandom = "random"
	// BasisHashed derives G and H by hashing to the group, so every tree
	// over the same group and width shares an auditable basis.
	BasisHashed = "hashed"
)

// MaxExponent bounds the node width at 2^16 children.
const MaxExponent = 16

// Config controls tree construction.
type Config struct {
	// Exponent sets the node width to 2^Exponent children.
	Exponent int

	// Basis selects how the commitment basis is produced.
	Basis string

	// Parallelism bounds the number of blocks committed concurrently.
	// Zero or negative means GOMAXPROCS.
	Parallelism int

	// ProofCacheSize is the number of proof chains kept per tree. Zero
	// disables caching.
	ProofCacheSize int

	// Logger receives build and proof events. Nil uses the default logger.
	Logger *log.Logger

	// Metrics records build and proof statistics. Nil disables recording.
	Metrics *metrics.Metrics
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Exponent:       2,
		Basis:          BasisRandom,
		ProofCacheSize: 128,
	}
}

func (c Config) parallelism() int {
	if c.Parallelism <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Parallelism
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default().Module("verkle")
	}
	return c.Logger
}
