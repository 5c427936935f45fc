// SPDX-License-Identifier: MIT
// Package: lvgnn/builder
//
// impl_cycle.go - implementation of Cycle(n) constructor.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Emits edges in stable order i -> (i+1)%n for i=0..n-1.
//   • Undirected by default: every node has in-degree 2.

package builder

import "fmt"

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-node simple cycle C_n.
func Cycle(n int) Constructor {
	return func(es *edgeSet, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		es.grow(n)
		for i := 0; i < n; i++ {
			es.link(i, (i+1)%n, cfg)
		}
		return nil
	}
}
