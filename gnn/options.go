// SPDX-License-Identifier: MIT

// Package gnn: functional options for layers and multi-head combiners.
//
// Conventions:
//   - Every knob has a Default* constant; the zero option set is a valid layer.
//   - Option constructors panic on nonsensical values (programmer error);
//     runtime inputs are validated by NewLayer and Forward and reported as errors.
//   - Options are applied in argument order; the last write wins.

package gnn

import (
	"math/rand"

	"github.com/katalvlaran/lvgnn/matrix"
)

// Defaults (single source of truth).
const (
	// DefaultRelations is the relation count of a plain (single-relation) layer.
	DefaultRelations = 1

	// DefaultNegativeSlope is the leaky-rectify slope applied to attention scores.
	DefaultNegativeSlope = matrix.DefaultNegativeSlope

	// DefaultSeed selects the fixed default RNG seed.
	DefaultSeed int64 = 0
)

// Option customizes NewLayer.
type Option func(*layerConfig)

type layerConfig struct {
	relations       int
	seed            int64
	rng             *rand.Rand
	negativeSlope   float64
	requireNeighbor bool
	parallel        bool
	name            string
}

func defaultLayerConfig() layerConfig {
	return layerConfig{
		relations:     DefaultRelations,
		seed:          DefaultSeed,
		negativeSlope: DefaultNegativeSlope,
	}
}

// WithRelations sets the number of typed relations R. R > 1 gives one weight
// matrix per relation and requires a Structure with exactly R relations.
// Panics if r < 1.
func WithRelations(r int) Option {
	if r < 1 {
		panic("gnn: WithRelations: r must be >= 1")
	}
	return func(c *layerConfig) { c.relations = r }
}

// WithSeed initializes parameters from a deterministic seed (0 selects the default seed).
func WithSeed(seed int64) Option {
	return func(c *layerConfig) { c.seed = seed; c.rng = nil }
}

// WithRand initializes parameters from the given source. It takes precedence
// over WithSeed when both are given in that order. Panics on nil.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("gnn: WithRand: nil *rand.Rand")
	}
	return func(c *layerConfig) { c.rng = rng }
}

// WithNegativeSlope sets the attention leaky-rectify slope.
// Panics on NaN, ±Inf or a negative slope.
func WithNegativeSlope(slope float64) Option {
	if !finiteSlope(slope) {
		panic("gnn: WithNegativeSlope: slope must be finite and >= 0")
	}
	return func(c *layerConfig) { c.negativeSlope = slope }
}

// WithRequireNeighbor makes a node without incoming edges an error
// (ErrZeroDegree) under attention instead of a zero output row.
func WithRequireNeighbor() Option {
	return func(c *layerConfig) { c.requireNeighbor = true }
}

// WithParallelRelations evaluates relations concurrently. Results are identical
// to sequential evaluation.
func WithParallelRelations() Option {
	return func(c *layerConfig) { c.parallel = true }
}

// WithName labels the layer in log lines.
func WithName(name string) Option {
	return func(c *layerConfig) { c.name = name }
}

// MultiHeadOption customizes NewMultiHead.
type MultiHeadOption func(*multiHeadConfig)

type multiHeadConfig struct {
	parallel bool
	name     string
}

// WithParallelHeads evaluates heads concurrently with errgroup.
func WithParallelHeads() MultiHeadOption {
	return func(c *multiHeadConfig) { c.parallel = true }
}

// WithHeadsName labels the combiner in log lines.
func WithHeadsName(name string) MultiHeadOption {
	return func(c *multiHeadConfig) { c.name = name }
}
