// SPDX-License-Identifier: MIT
// Package: lvgnn/builder
//
// impl_path.go - Path(n): 0-1-2-…-(n-1). End points have degree 1.

package builder

import "fmt"

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a simple path over n nodes.
func Path(n int) Constructor {
	return func(es *edgeSet, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		es.grow(n)
		for i := 0; i+1 < n; i++ {
			es.link(i, i+1, cfg)
		}
		return nil
	}
}
