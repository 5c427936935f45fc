// SPDX-License-Identifier: MIT
// Package matrix - element-wise activations and numerically stable softmax.
//
// Numeric policy:
//   - StableSoftmax subtracts the maximum before exponentiating, so the
//     largest exponent is exp(0) = 1 and the sum is ≥ 1 for non-empty input.
//     A one-element input therefore normalizes to exactly 1.0.
//   - NaN input is rejected with ErrNaNInf; -Inf entries are allowed and map
//     to weight 0 as long as at least one entry is finite.

package matrix

import (
	"fmt"
	"math"
)

// DefaultNegativeSlope is the leaky-rectification slope used when callers do not choose one.
const DefaultNegativeSlope = 0.01

// DefaultELUAlpha is the saturation value of ELU for negative inputs.
const DefaultELUAlpha = 1.0

// LeakyRelu returns x when x > 0, otherwise x * negativeSlope.
// Complexity: O(1).
func LeakyRelu(x, negativeSlope float64) float64 {
	if x > 0 {
		return x
	}

	return x * negativeSlope
}

// LeakyRectify applies LeakyRelu element-wise and returns a fresh Dense.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func LeakyRectify(m Matrix, negativeSlope float64) (*Dense, error) {
	return mapElems(m, opLeaky, func(v float64) float64 { return LeakyRelu(v, negativeSlope) })
}

// ReLU applies max(0, x) element-wise.
// Complexity: O(r*c).
func ReLU(m Matrix) (*Dense, error) {
	return mapElems(m, opReLU, func(v float64) float64 { return math.Max(0, v) })
}

// ELU applies x for x > 0 and alpha*(e^x − 1) otherwise, element-wise.
// Complexity: O(r*c).
func ELU(m Matrix, alpha float64) (*Dense, error) {
	return mapElems(m, opELU, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return alpha * math.Expm1(v)
	})
}

// mapElems materializes f over every element of m in row-major order.
func mapElems(m Matrix, tag string, f func(float64) float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	res := dm.clone()
	for idx, v := range res.data {
		res.data[idx] = f(v)
	}

	return res, nil
}

// StableSoftmax returns softmax(values) computed as exp(v - max) / Σ exp(v - max).
//
// Implementation:
//   - Stage 1: reject empty input (ErrEmptyInput) and NaN (ErrNaNInf).
//   - Stage 2: find the global maximum.
//   - Stage 3: exponentiate shifted values and accumulate the sum.
//   - Stage 4: divide by the sum; a non-positive sum reports ErrEmptyInput.
//
// Behavior highlights:
//   - Shift invariant: StableSoftmax(v + c) == StableSoftmax(v) for any finite c.
//   - Output length equals input length; input is never mutated.
//
// Complexity:
//   - Time O(n), Space O(n).
func StableSoftmax(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, matrixErrorf(opSoftmax, ErrEmptyInput)
	}
	maxV := math.Inf(-1)
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, matrixErrorf(opSoftmax, fmt.Errorf("index %d: %w", i, ErrNaNInf))
		}
		if v > maxV {
			maxV = v
		}
	}
	if math.IsInf(maxV, -1) {
		// every entry is -Inf: no finite mass to normalize
		return nil, matrixErrorf(opSoftmax, ErrEmptyInput)
	}

	out := make([]float64, len(values))
	sum := ZeroSum
	for i, v := range values {
		out[i] = math.Exp(v - maxV)
		sum += out[i]
	}
	if !(sum > 0) {
		return nil, matrixErrorf(opSoftmax, ErrEmptyInput)
	}
	for i := range out {
		out[i] /= sum
	}

	return out, nil
}

// StableSoftmaxColumns applies StableSoftmax independently to every column of m,
// subtracting the per-column maximum. The result has the same shape as m.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf; errors carry the offending column index.
//
// Complexity:
//   - Time O(r*c), Space O(r*c + r).
func StableSoftmaxColumns(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSoftmaxCols, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opSoftmaxCols, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opSoftmaxCols, err)
	}
	col := make([]float64, dm.r) // reused column buffer
	var i, j int
	for j = 0; j < dm.c; j++ {
		for i = 0; i < dm.r; i++ {
			col[i] = dm.data[i*dm.c+j]
		}
		sm, serr := StableSoftmax(col)
		if serr != nil {
			return nil, matrixErrorf(opSoftmaxCols, fmt.Errorf("column %d: %w", j, serr))
		}
		for i = 0; i < dm.r; i++ {
			res.data[i*dm.c+j] = sm[i]
		}
	}

	return res, nil
}
