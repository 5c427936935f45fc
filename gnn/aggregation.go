// SPDX-License-Identifier: MIT

// Package gnn - uniform aggregation policies.
//
// Contract:
//   - adjacency rows index destinations: out[i] = Σ_j A[i][j]·H[j].
//   - projected must have exactly N rows.
//   - Mean aggregation never divides by zero: the first zero-degree node
//     (ascending index) aborts the pass with ErrZeroDegree and no output.

package gnn

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/matrix"
)

// Policy selects how neighbor messages are scored and combined.
type Policy int

const (
	// PolicySum sums neighbor embeddings: A · H.
	PolicySum Policy = iota

	// PolicyMean averages neighbor embeddings by in-degree (GCN-style).
	PolicyMean

	// PolicyAttention weights neighbors with learned additive attention (GAT-style).
	PolicyAttention
)

var policyNames = [...]string{
	PolicySum:       "sum",
	PolicyMean:      "mean",
	PolicyAttention: "attention",
}

// String returns the canonical lower-case policy name.
func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// Valid reports whether p is one of the declared policies.
func (p Policy) Valid() bool { return p >= PolicySum && p <= PolicyAttention }

// ParsePolicy maps a case-insensitive name to a Policy. "gcn" and "gat" are
// accepted as aliases of "mean" and "attention".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return PolicySum, nil
	case "mean", "gcn":
		return PolicyMean, nil
	case "attention", "gat":
		return PolicyAttention, nil
	}
	return 0, fmt.Errorf("unknown policy %q: %w", s, ErrInvalidConfig)
}

// AggregateSum returns A · H for a single relation.
//
// Errors:
//   - ErrInvalidAdjacency for a nil adjacency.
//   - ErrShapeMismatch when projected.Rows() != N.
//
// Complexity:
//   - Time O(N²·E) with zero-skip (effectively O(N² + |edges|·E)).
func AggregateSum(adj *adjacency.Adjacency, projected matrix.Matrix) (*matrix.Dense, error) {
	if err := checkGraphRows(adj, projected); err != nil {
		return nil, gnnErrorf(opAggregateSum, err)
	}
	out, err := matrix.Mul(adj.Dense(), projected)
	if err != nil {
		return nil, gnnErrorf(opAggregateSum, err)
	}

	return out, nil
}

// AggregateMean returns (A · H)[i] / deg[i] for every node i.
//
// Implementation:
//   - Stage 1: validate shapes and compute in-degrees (row sums of A).
//   - Stage 2: fail on the first zero degree with *NodeError{ErrZeroDegree}.
//   - Stage 3: AggregateSum, then divide each row by its degree.
//
// Complexity:
//   - AggregateSum + O(N·E).
func AggregateMean(adj *adjacency.Adjacency, projected matrix.Matrix) (*matrix.Dense, error) {
	if err := checkGraphRows(adj, projected); err != nil {
		return nil, gnnErrorf(opAggregateMean, err)
	}
	deg := adj.InDegrees()
	inv := make([]float64, len(deg))
	for i, d := range deg {
		if d == 0 {
			return nil, gnnErrorf(opAggregateMean, &NodeError{Node: i, Err: ErrZeroDegree})
		}
		inv[i] = 1 / d
	}
	sum, err := AggregateSum(adj, projected)
	if err != nil {
		return nil, gnnErrorf(opAggregateMean, err)
	}
	out, err := matrix.ScaleRows(sum, inv)
	if err != nil {
		return nil, gnnErrorf(opAggregateMean, err)
	}

	return out, nil
}

// aggregateUniform dispatches the two uniform policies.
func aggregateUniform(policy Policy, adj *adjacency.Adjacency, projected matrix.Matrix) (*matrix.Dense, error) {
	switch policy {
	case PolicySum:
		return AggregateSum(adj, projected)
	case PolicyMean:
		return AggregateMean(adj, projected)
	}
	return nil, fmt.Errorf("%s is not a uniform policy: %w", policy, ErrUnsupportedPolicy)
}

// checkGraphRows validates a non-nil adjacency and a projected matrix with N rows.
func checkGraphRows(adj *adjacency.Adjacency, projected matrix.Matrix) error {
	if adj == nil {
		return fmt.Errorf("nil adjacency: %w", ErrInvalidAdjacency)
	}
	if err := matrix.ValidateNotNil(projected); err != nil {
		return fmt.Errorf("projected: %v: %w", err, ErrShapeMismatch)
	}
	if projected.Rows() != adj.Nodes() {
		return fmt.Errorf("projected has %d rows, graph has %d nodes: %w", projected.Rows(), adj.Nodes(), ErrShapeMismatch)
	}

	return nil
}
