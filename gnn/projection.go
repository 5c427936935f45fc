// SPDX-License-Identifier: MIT

package gnn

import (
	"fmt"

	"github.com/katalvlaran/lvgnn/matrix"
)

// Project maps N×F node features into the E-dimensional latent space:
// H = features · weights, with weights shaped F×E. The result is N×E.
//
// Errors:
//   - ErrShapeMismatch when features.Cols() != weights.Rows() or an operand is nil.
//
// Complexity:
//   - Time O(N·F·E), Space O(N·E).
func Project(features, weights matrix.Matrix) (*matrix.Dense, error) {
	if err := checkPair(features, weights); err != nil {
		return nil, gnnErrorf(opProject, err)
	}
	h, err := matrix.Mul(features, weights)
	if err != nil {
		return nil, gnnErrorf(opProject, err)
	}

	return h, nil
}

// ProjectRelations projects one shared N×F feature matrix through an (R, F, E)
// weight tensor, producing an (R, N, E) tensor with one projection per relation.
// The features are broadcast along the relation axis and multiplied batch-wise.
//
// Errors:
//   - ErrShapeMismatch for nil operands or features.Cols() != F.
//
// Complexity:
//   - Time O(R·N·F·E), Space O(R·N·(F+E)).
func ProjectRelations(features matrix.Matrix, weights *matrix.Tensor3) (*matrix.Tensor3, error) {
	if weights == nil {
		return nil, gnnErrorf(opProjectRelations, fmt.Errorf("nil weights: %w", ErrShapeMismatch))
	}
	if err := matrix.ValidateNotNil(features); err != nil {
		return nil, gnnErrorf(opProjectRelations, fmt.Errorf("%v: %w", err, ErrShapeMismatch))
	}
	r, f, _ := weights.Shape()
	if features.Cols() != f {
		return nil, gnnErrorf(opProjectRelations, fmt.Errorf("features have %d columns, weights expect %d: %w", features.Cols(), f, ErrShapeMismatch))
	}
	x, err := matrix.Broadcast(features, r)
	if err != nil {
		return nil, gnnErrorf(opProjectRelations, err)
	}
	h, err := matrix.BatchedMatMul(x, weights)
	if err != nil {
		return nil, gnnErrorf(opProjectRelations, err)
	}

	return h, nil
}

// checkPair validates that features (N×F) and weights (F×E) are non-nil and conformable.
func checkPair(features, weights matrix.Matrix) error {
	if err := matrix.ValidateNotNil(features); err != nil {
		return fmt.Errorf("features: %v: %w", err, ErrShapeMismatch)
	}
	if err := matrix.ValidateNotNil(weights); err != nil {
		return fmt.Errorf("weights: %v: %w", err, ErrShapeMismatch)
	}
	if features.Cols() != weights.Rows() {
		return fmt.Errorf("features are %dx%d, weights %dx%d: %w",
			features.Rows(), features.Cols(), weights.Rows(), weights.Cols(), ErrShapeMismatch)
	}

	return nil
}
