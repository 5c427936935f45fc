// SPDX-License-Identifier: MIT
// Package: lvgnn/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p) constructor.
//
// Canonical model:
//   - Erdős–Rényi-like generator: include each admissible edge independently with prob p.
//   - Undirected: iterate unordered pairs {i,j} with i<j.
//   - Directed: iterate ordered pairs (i,j), i != j.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - RNG required only when 0 < p < 1 (else ErrNeedRandSource).
//
// Determinism:
//   - Stable edge-trial order: for each i asc, j asc. Fixed seed ⇒ fixed graph.

package builder

import "fmt"

const (
	methodRandomSparse = "RandomSparse"
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse returns a Constructor that samples an Erdős–Rényi-like graph
// over n nodes with independent edge probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(es *edgeSet, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodRandomSparse, n, ErrTooFewVertices)
		}
		if !(p >= probMin && p <= probMax) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}
		es.grow(n)

		// keep decides one Bernoulli trial; p ∈ {0,1} never touches the RNG.
		keep := func() bool {
			switch p {
			case probMin:
				return false
			case probMax:
				return true
			}
			return cfg.rng.Float64() < p
		}
		for i := 0; i < n; i++ {
			start := i + 1
			if cfg.directed {
				start = 0
			}
			for j := start; j < n; j++ {
				if i == j {
					continue
				}
				if keep() {
					es.link(i, j, cfg)
				}
			}
		}
		return nil
	}
}
