// SPDX-License-Identifier: MIT
// Package: lvgnn/builder
//
// impl_complete.go - Complete(n): K_n without self-loops.
//
// Emission order: i asc, j asc over j>i (mirrored unless directed; under
// WithDirected only i→j with i<j is emitted, giving a DAG).

package builder

import "fmt"

const methodComplete = "Complete"

// Complete returns a Constructor that builds the complete graph K_n.
func Complete(n int) Constructor {
	return func(es *edgeSet, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodComplete, n, ErrTooFewVertices)
		}
		es.grow(n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				es.link(i, j, cfg)
			}
		}
		return nil
	}
}
