// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
//
// All kernels return these sentinels (optionally wrapped with an operation
// tag via matrixErrorf) and tests match them with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row, column or batch index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrShapeMismatch indicates incompatible shapes between operands, e.g. Mul
	// where a.Cols != b.Rows, or BatchedMatMul with different batch counts.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrNilMatrix indicates that a nil Matrix or Tensor3 was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrEmptyInput is returned by softmax over an empty set (the sum of
	// exponentials would be zero).
	ErrEmptyInput = errors.New("matrix: empty input")
)

// ErrDimensionMismatch is an alias of ErrShapeMismatch.
var ErrDimensionMismatch = ErrShapeMismatch

// Operation tags used in error wrapping.
const (
	opAdd           = "Add"
	opMul           = "Mul"
	opTranspose     = "Transpose"
	opScale         = "Scale"
	opScaleRows     = "ScaleRows"
	opRowSums       = "RowSums"
	opHConcat       = "HConcat"
	opAllClose      = "AllClose"
	opLeaky         = "LeakyRectify"
	opReLU          = "ReLU"
	opELU           = "ELU"
	opSoftmax       = "StableSoftmax"
	opSoftmaxCols   = "StableSoftmaxColumns"
	opBatchedMatMul = "BatchedMatMul"
	opStack         = "Stack"
	opBroadcast     = "Broadcast"
	opSumBatches    = "SumBatches"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Only call with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
