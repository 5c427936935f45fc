// SPDX-License-Identifier: MIT
// Package: lvgnn/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: Build(bopts, cons...). Resolves cfg, runs cons in order,
//     then materializes a single adjacency.Adjacency.
//   - Constructors index nodes from 0; composing constructors overlays their
//     edges on the same node set (the node count is the maximum requested).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.
//   - Safety: never panic; return sentinel errors from constructors.
//
// AI-Hints (practical):
//   - Cycle(5) is the canonical uniform-degree-2 fixture for mean aggregation.
//   - Compose Path(n-1) with Nodes(n) to append an isolated node.
//   - Use WithSeed(...) to freeze RandomSparse.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvgnn/adjacency"
)

// Constructor records nodes and edges into the shared edge set using the
// resolved builderConfig. Constructors validate parameters first and return
// sentinel errors (no panics).
type Constructor func(es *edgeSet, cfg builderConfig) error

// edgeSet accumulates the node count and directed (src, dst) pairs.
type edgeSet struct {
	n        int
	src, dst []int
}

// grow ensures at least n nodes exist.
func (es *edgeSet) grow(n int) {
	if n > es.n {
		es.n = n
	}
}

// link records u→v, and v→u as well when the configuration is undirected.
func (es *edgeSet) link(u, v int, cfg builderConfig) {
	es.src = append(es.src, u)
	es.dst = append(es.dst, v)
	if !cfg.directed && u != v {
		es.src = append(es.src, v)
		es.dst = append(es.dst, u)
	}
}

// Build resolves options, applies all constructors in order and returns the
// resulting adjacency. Any constructor error is wrapped with "Build: %w".
//
// Complexity:
//   - Σ constructor cost + O(N² + E) for the adjacency.
func Build(bopts []BuilderOption, cons ...Constructor) (*adjacency.Adjacency, error) {
	cfg := newBuilderConfig(bopts...)
	es := &edgeSet{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(es, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}
	if es.n == 0 {
		return nil, fmt.Errorf("Build: no nodes: %w", ErrConstructFailed)
	}

	var aopts []adjacency.Option
	if cfg.selfLoops {
		aopts = append(aopts, adjacency.WithSelfLoops())
	}
	a, err := adjacency.FromEdges(es.n, es.src, es.dst, aopts...)
	if err != nil {
		return nil, fmt.Errorf("Build: %v: %w", err, ErrConstructFailed)
	}

	return a, nil
}

// MustBuild is Build for fixtures known to be valid; it panics on error.
func MustBuild(bopts []BuilderOption, cons ...Constructor) *adjacency.Adjacency {
	a, err := Build(bopts, cons...)
	if err != nil {
		panic(err)
	}

	return a
}

// Nodes ensures the graph has at least n nodes without adding edges.
func Nodes(n int) Constructor {
	return func(es *edgeSet, _ builderConfig) error {
		if n < 1 {
			return fmt.Errorf("Nodes: n=%d < min=1: %w", n, ErrTooFewVertices)
		}
		es.grow(n)
		return nil
	}
}
