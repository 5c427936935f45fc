// SPDX-License-Identifier: MIT
// Package: lvgnn/builder
//
// impl_star.go - Star(n): hub 0 linked to leaves 1..n-1.
//
// Under WithDirected the edges point hub → leaf, so the hub has no incoming
// edges: a handy isolated-destination fixture for aggregation tests.

package builder

import "fmt"

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that builds a star with center 0.
func Star(n int) Constructor {
	return func(es *edgeSet, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		es.grow(n)
		for leaf := 1; leaf < n; leaf++ {
			es.link(0, leaf, cfg)
		}
		return nil
	}
}
