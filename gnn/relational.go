// SPDX-License-Identifier: MIT

// Package gnn - relation-typed aggregation (R-GCN style).
//
//	out = Σ_r Aggregate(A_r, H_r)     H_r = X · W_r
//
// Determinism:
//   - Per-relation results land in a slice indexed by r and are summed in
//     ascending r, so parallel and sequential evaluation agree bit-for-bit.
//   - On failure the lowest failing relation is reported.

package gnn

import (
	"fmt"
	"runtime"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/matrix"
	"golang.org/x/sync/errgroup"
)

// AggregateRelational applies a uniform policy to every relation r of g with
// the r-th batch of projected, then sums the R results.
//
// Errors:
//   - ErrUnsupportedPolicy for PolicyAttention.
//   - ErrShapeMismatch when projected has a batch count other than R or rows other than N.
//   - Per-relation failures as *RelationError{Relation: r}.
//
// Complexity:
//   - Time O(R·N²·E) worst case, Space O(R·N·E).
func AggregateRelational(g adjacency.Structure, projected *matrix.Tensor3, policy Policy) (*matrix.Dense, error) {
	out, err := aggregateRelational(g, projected, policy, false)
	if err != nil {
		return nil, gnnErrorf(opRelational, err)
	}

	return out, nil
}

func aggregateRelational(g adjacency.Structure, projected *matrix.Tensor3, policy Policy, parallel bool) (*matrix.Dense, error) {
	if policy != PolicySum && policy != PolicyMean {
		return nil, fmt.Errorf("policy %s: %w", policy, ErrUnsupportedPolicy)
	}
	if g == nil {
		return nil, fmt.Errorf("nil structure: %w", ErrInvalidAdjacency)
	}
	if projected == nil {
		return nil, fmt.Errorf("nil projection: %w", ErrShapeMismatch)
	}
	r, n, _ := projected.Shape()
	if r != g.Relations() || n != g.Nodes() {
		return nil, fmt.Errorf("projection has %d relations x %d rows, graph %d x %d: %w",
			r, n, g.Relations(), g.Nodes(), ErrShapeMismatch)
	}

	parts, err := forEachIndex(r, parallel, func(k int) (*matrix.Dense, error) {
		adj, err := g.Relation(k)
		if err != nil {
			return nil, &RelationError{Relation: k, Err: err}
		}
		h, err := projected.Batch(k)
		if err != nil {
			return nil, &RelationError{Relation: k, Err: err}
		}
		agg, err := aggregateUniform(policy, adj, h)
		if err != nil {
			return nil, &RelationError{Relation: k, Err: err}
		}
		return agg, nil
	})
	if err != nil {
		return nil, err
	}

	return sumInOrder(parts)
}

// forEachIndex evaluates fn for k = 0..count-1 and returns the results by index.
// In parallel mode the goroutines are bounded by GOMAXPROCS; the error of the
// lowest failing index is returned regardless of completion order.
func forEachIndex(count int, parallel bool, fn func(k int) (*matrix.Dense, error)) ([]*matrix.Dense, error) {
	out := make([]*matrix.Dense, count)
	if !parallel || count == 1 {
		for k := 0; k < count; k++ {
			d, err := fn(k)
			if err != nil {
				return nil, err
			}
			out[k] = d
		}
		return out, nil
	}

	errs := make([]error, count)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k := 0; k < count; k++ {
		k := k
		g.Go(func() error {
			out[k], errs[k] = fn(k)
			return errs[k]
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// sumInOrder adds equally shaped matrices in slice order.
func sumInOrder(parts []*matrix.Dense) (*matrix.Dense, error) {
	if len(parts) == 0 {
		return nil, ErrEmptyInput
	}
	acc := parts[0]
	for k := 1; k < len(parts); k++ {
		next, err := matrix.Add(acc, parts[k])
		if err != nil {
			return nil, err
		}
		acc = next
	}

	return acc, nil
}
