// SPDX-License-Identifier: MIT
// Package: lvgnn/builder
//
// options.go - functional options and the resolved configuration.
//
// Contract (strict):
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.
//   • Deterministic defaults: undirected, no self-loops, no RNG.

package builder

import "math/rand"

// BuilderOption customizes construction by mutating a builderConfig.
type BuilderOption func(*builderConfig)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	rng       *rand.Rand // nil means “no randomness”
	directed  bool       // false ⇒ every link is mirrored
	selfLoops bool       // true ⇒ diagonal set to 1 at the end
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG for stochastic builders. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithDirected emits each edge in one direction only (u→v).
func WithDirected() BuilderOption {
	return func(c *builderConfig) { c.directed = true }
}

// WithSelfLoops adds a self-loop to every node of the result.
func WithSelfLoops() BuilderOption {
	return func(c *builderConfig) { c.selfLoops = true }
}

// newBuilderConfig applies options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, fn := range opts {
		if fn == nil {
			panic("builder: nil BuilderOption")
		}
		fn(&cfg)
	}

	return cfg
}
