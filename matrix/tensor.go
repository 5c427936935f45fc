// SPDX-License-Identifier: MIT

// Package matrix - Tensor3, a stack of equally shaped matrices.
//
// Purpose:
//   - Hold per-relation weight tensors (R, F, E) and per-relation projected
//     features (R, N, E) in one contiguous buffer.
//   - Provide BatchedMatMul: an independent matrix product per leading index.
//
// Layout:
//   - offset(b, i, j) = b*rows*cols + i*cols + j (batch-major, then row-major).

package matrix

import "fmt"

// Tensor3 is a batch of B matrices, each rows×cols, stored contiguously.
type Tensor3 struct {
	b, r, c int
	data    []float64
}

// NewTensor3 allocates a zero tensor of shape (batches, rows, cols).
// Returns ErrInvalidDimensions when any extent is non-positive.
// Complexity: O(b*r*c).
func NewTensor3(batches, rows, cols int) (*Tensor3, error) {
	if batches <= 0 || rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Tensor3{b: batches, r: rows, c: cols, data: make([]float64, batches*rows*cols)}, nil
}

// Stack copies equally shaped matrices into a new Tensor3, preserving order.
//
// Errors:
//   - ErrEmptyInput (no matrices), ErrNilMatrix, ErrShapeMismatch (shape differs
//     from the first matrix; the message names the offending batch index).
//
// Complexity:
//   - Time O(b*r*c), Space O(b*r*c).
func Stack(ms ...Matrix) (*Tensor3, error) {
	if len(ms) == 0 {
		return nil, matrixErrorf(opStack, ErrEmptyInput)
	}
	var t *Tensor3
	for k, m := range ms {
		if err := ValidateNotNil(m); err != nil {
			return nil, matrixErrorf(opStack, fmt.Errorf("batch %d: %w", k, err))
		}
		d, err := AsDense(m)
		if err != nil {
			return nil, matrixErrorf(opStack, err)
		}
		if t == nil {
			if t, err = NewTensor3(len(ms), d.r, d.c); err != nil {
				return nil, matrixErrorf(opStack, err)
			}
		}
		if d.r != t.r || d.c != t.c {
			return nil, matrixErrorf(opStack, fmt.Errorf("batch %d is %dx%d, want %dx%d: %w", k, d.r, d.c, t.r, t.c, ErrShapeMismatch))
		}
		copy(t.data[k*t.r*t.c:], d.data)
	}

	return t, nil
}

// Broadcast repeats m along a new leading axis of extent batches.
// Used to share one feature matrix across every relation.
// Complexity: O(batches*r*c).
func Broadcast(m Matrix, batches int) (*Tensor3, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opBroadcast, err)
	}
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opBroadcast, err)
	}
	t, err := NewTensor3(batches, d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opBroadcast, err)
	}
	for k := 0; k < batches; k++ {
		copy(t.data[k*d.r*d.c:], d.data)
	}

	return t, nil
}

// Shape returns (batches, rows, cols).
func (t *Tensor3) Shape() (batches, rows, cols int) { return t.b, t.r, t.c }

// Batches returns the extent of the leading axis.
func (t *Tensor3) Batches() int { return t.b }

// Batch returns a copy of the k-th matrix.
// Returns ErrOutOfRange for an invalid k.
// Complexity: O(r*c).
func (t *Tensor3) Batch(k int) (*Dense, error) {
	if k < 0 || k >= t.b {
		return nil, fmt.Errorf("Tensor3.Batch(%d): %w", k, ErrOutOfRange)
	}
	size := t.r * t.c

	return NewDenseData(t.r, t.c, t.data[k*size:(k+1)*size])
}

// SetBatch overwrites the k-th matrix with a copy of m.
// Errors: ErrOutOfRange, ErrNilMatrix, ErrShapeMismatch.
func (t *Tensor3) SetBatch(k int, m Matrix) error {
	if k < 0 || k >= t.b {
		return fmt.Errorf("Tensor3.SetBatch(%d): %w", k, ErrOutOfRange)
	}
	if err := ValidateNotNil(m); err != nil {
		return fmt.Errorf("Tensor3.SetBatch(%d): %w", k, err)
	}
	d, err := AsDense(m)
	if err != nil {
		return fmt.Errorf("Tensor3.SetBatch(%d): %w", k, err)
	}
	if d.r != t.r || d.c != t.c {
		return fmt.Errorf("Tensor3.SetBatch(%d): %dx%d into %dx%d: %w", k, d.r, d.c, t.r, t.c, ErrShapeMismatch)
	}
	copy(t.data[k*t.r*t.c:], d.data)

	return nil
}

// SumBatches returns Σ_k t[k] as a rows×cols Dense (fixed k order).
// Complexity: O(b*r*c).
func (t *Tensor3) SumBatches() (*Dense, error) {
	if t == nil {
		return nil, matrixErrorf(opSumBatches, ErrNilMatrix)
	}
	res, err := NewDense(t.r, t.c)
	if err != nil {
		return nil, matrixErrorf(opSumBatches, err)
	}
	size := t.r * t.c
	for k := 0; k < t.b; k++ {
		base := k * size
		for idx := 0; idx < size; idx++ {
			res.data[idx] += t.data[base+idx]
		}
	}

	return res, nil
}

// BatchedMatMul multiplies a[k]·b[k] independently for every batch index k.
//
// Implementation:
//   - Stage 1: validate non-nil operands, equal batch counts and inner dims.
//   - Stage 2: allocate (B, n, m) result.
//   - Stage 3: per batch, run the same i→k→j kernel as Mul on sub-slices.
//
// Errors:
//   - ErrNilMatrix, ErrShapeMismatch (batch counts differ or a.cols != b.rows).
//
// Complexity:
//   - Time O(B*n*k*m), Space O(B*n*m).
func BatchedMatMul(a, b *Tensor3) (*Tensor3, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opBatchedMatMul, ErrNilMatrix)
	}
	if a.b != b.b {
		return nil, matrixErrorf(opBatchedMatMul, fmt.Errorf("batch counts %d vs %d: %w", a.b, b.b, ErrShapeMismatch))
	}
	if a.c != b.r {
		return nil, matrixErrorf(opBatchedMatMul, fmt.Errorf("inner dims %d vs %d: %w", a.c, b.r, ErrShapeMismatch))
	}
	out, err := NewTensor3(a.b, a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opBatchedMatMul, err)
	}
	sizeA, sizeB, sizeOut := a.r*a.c, b.r*b.c, a.r*b.c
	for k := 0; k < a.b; k++ {
		mulInto(
			out.data[k*sizeOut:(k+1)*sizeOut],
			a.data[k*sizeA:(k+1)*sizeA],
			b.data[k*sizeB:(k+1)*sizeB],
			a.r, a.c, b.c,
		)
	}

	return out, nil
}
