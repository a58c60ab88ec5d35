// Package sweep drives the bench executable over an arithmetic sequence of
// input sizes, writing a fresh config document before each run.
package sweep

import (
	"fmt"

	"github.com/weiihann/sizesweep/benchconfig"
)

// Defaults for a full sweep.
const (
	DefaultStart int64 = 1_000_000
	DefaultEnd   int64 = 100_000_000
	DefaultStep  int64 = 1_000_000
	DefaultSeed  int64 = 42
)

// MaxIterations bounds the number of sizes a single sweep may run.
const MaxIterations int64 = 1_000_000

// Config controls which sizes are benchmarked.
type Config struct {
	Start int64
	End   int64
	Step  int64
	Seed  int64
}

// DefaultConfig returns the 1M..100M sweep in 1M steps with seed 42.
func DefaultConfig() Config {
	return Config{
		Start: DefaultStart,
		End:   DefaultEnd,
		Step:  DefaultStep,
		Seed:  DefaultSeed,
	}
}

// Validate rejects configurations that would produce an empty or endless
// sequence.
func (c Config) Validate() error {
	if c.Start <= 0 {
		return fmt.Errorf("start must be positive, got %d", c.Start)
	}

	if c.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d", c.Step)
	}

	if c.End < c.Start {
		return fmt.Errorf("end %d is before start %d", c.End, c.Start)
	}

	if n := (c.End-c.Start)/c.Step + 1; n > MaxIterations {
		return fmt.Errorf(
			"sweep has %d sizes, more than the limit of %d", n, MaxIterations,
		)
	}

	return nil
}

// Sizes returns Start, Start+Step, ... up to and including End when End
// falls on a step.
func (c Config) Sizes() []int64 {
	if c.Validate() != nil {
		return nil
	}

	sizes := make([]int64, 0, (c.End-c.Start)/c.Step+1)
	for n := c.Start; ; n += c.Step {
		sizes = append(sizes, n)

		// Compare before adding so n never wraps past MaxInt64.
		if n > c.End-c.Step {
			break
		}
	}

	return sizes
}

// Documents returns the config document for every size, in order.
func (c Config) Documents() []benchconfig.Document {
	sizes := c.Sizes()
	docs := make([]benchconfig.Document, len(sizes))

	for i, n := range sizes {
		docs[i] = benchconfig.New(n, c.Seed)
	}

	return docs
}
