// SPDX-License-Identifier: MIT
// Package matrix - linear algebra kernels.
//
// Purpose:
//   - Canonical kernels used by projection and aggregation stages:
//     Mul, Transpose, Add, Scale, ScaleRows, RowSums, HConcat, AllClose.
//
// Determinism:
//   - Fixed loop orders; Mul uses i→k→j with zero-skip on A[i,k]. Skipping an
//     exact zero never changes the sum, so adjacency products stay exact.
//
// AI-Hints:
//   - Adjacency · Features is the uniform aggregation; its cost is dominated by
//     non-zero entries thanks to the zero-skip.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial accumulator value for sums.
const ZeroSum = 0.0

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible (non-nil, A.Cols == B.Rows).
//   - Stage 2: materialize both operands as *Dense (no copy for *Dense).
//   - Stage 3: i→k→j accumulation on row-major strides with zero-skip.
//
// Errors:
//   - ErrNilMatrix, ErrShapeMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	mulInto(res.data, da.data, db.data, da.r, da.c, db.c)

	return res, nil
}

// mulInto accumulates the (r×n)·(n×c) product of flat row-major slices into dst.
// dst must be zeroed and have length r*c. Shared by Mul and BatchedMatMul.
func mulInto(dst, a, b []float64, r, n, c int) {
	var (
		i, k, j            int
		av                 float64
		rowA, rowB, rowDst int
	)
	for i = 0; i < r; i++ {
		rowA = i * n
		rowDst = i * c
		for k = 0; k < n; k++ {
			av = a[rowA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowB = k * c
			for j = 0; j < c; j++ {
				dst[rowDst+j] += av * b[rowB+j]
			}
		}
	}
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j, base int
	for i = 0; i < dm.r; i++ {
		base = i * dm.c
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[base+j]
		}
	}

	return res, nil
}

// Add computes element-wise a + b into a fresh Dense.
// Errors: ErrNilMatrix, ErrShapeMismatch. Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	res := da.clone()
	for idx := range res.data {
		res.data[idx] += db.data[idx]
	}

	return res, nil
}

// Scale returns alpha * m.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := dm.clone()
	for idx := range res.data {
		res.data[idx] *= alpha
	}

	return res, nil
}

// ScaleRows computes out[i,j] = m[i,j] * scale[i].
// Errors: ErrNilMatrix, ErrShapeMismatch (len(scale) != Rows).
// Complexity: O(r*c). Deterministic i→j loops.
//
// AI-Hint: degree normalization is ScaleRows(A·H, 1/deg).
func ScaleRows(m Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	if err := ValidateVecLen(scale, m.Rows()); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	res := dm.clone()
	var base int
	for i := 0; i < res.r; i++ {
		base = i * res.c
		for j := 0; j < res.c; j++ {
			res.data[base+j] *= scale[i]
		}
	}

	return res, nil
}

// RowSums returns r where r[i] = Σ_j m[i,j].
// Complexity: O(r*c).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	out := make([]float64, dm.r)
	var s float64
	for i := 0; i < dm.r; i++ {
		s = ZeroSum
		for _, v := range dm.RawRow(i) {
			s += v
		}
		out[i] = s
	}

	return out, nil
}

// HConcat concatenates matrices side by side (column-wise), preserving argument order.
// All operands must share the same row count.
//
// Errors:
//   - ErrEmptyInput for no operands, ErrNilMatrix, ErrShapeMismatch (row counts differ).
//
// Complexity:
//   - Time O(r * Σc), Space O(r * Σc).
func HConcat(ms ...Matrix) (*Dense, error) {
	if len(ms) == 0 {
		return nil, matrixErrorf(opHConcat, ErrEmptyInput)
	}
	parts := make([]*Dense, len(ms))
	cols := 0
	for k, m := range ms {
		if err := ValidateNotNil(m); err != nil {
			return nil, matrixErrorf(opHConcat, fmt.Errorf("operand %d: %w", k, err))
		}
		d, err := AsDense(m)
		if err != nil {
			return nil, matrixErrorf(opHConcat, err)
		}
		if k > 0 && d.r != parts[0].r {
			return nil, matrixErrorf(opHConcat, fmt.Errorf("operand %d has %d rows, want %d: %w", k, d.r, parts[0].r, ErrShapeMismatch))
		}
		parts[k] = d
		cols += d.c
	}
	res, err := NewDense(parts[0].r, cols)
	if err != nil {
		return nil, matrixErrorf(opHConcat, err)
	}
	var off int
	for i := 0; i < res.r; i++ {
		off = i * cols
		for _, p := range parts {
			off += copy(res.data[off:], p.RawRow(i))
		}
	}

	return res, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) when every element satisfies the relation.
// NaN never compares close. Negative tolerances are normalized to |tol|.
//
// AI-Hints:
//   - AllClose with small atol is the workhorse of golden-value tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range da.data {
		if !(math.Abs(da.data[idx]-db.data[idx]) <= atol+rtol*math.Abs(db.data[idx])) {
			return false, nil // early-exit on first violation (NaN included)
		}
	}

	return true, nil
}
