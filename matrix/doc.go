// SPDX-License-Identifier: MIT

// Package matrix provides the numeric kernels shared by every graph layer:
// a row-major Dense matrix, a batched Tensor3 stack, linear algebra
// (Mul, Transpose, Add, Scale, ScaleRows, RowSums, HConcat), activations
// (LeakyRectify, ReLU, ELU) and numerically stable softmax.
//
// Contract:
//   - Every kernel allocates a fresh result; operands are never mutated.
//   - Loop orders are fixed (row → column, batch → row → column), so results
//     are bit-for-bit reproducible for identical inputs.
//   - User-triggered failures return sentinel errors (errors.Is); no panics.
//
// AI-Hints:
//   - Pass *Dense operands: kernels walk the flat backing slice directly.
//   - StableSoftmax subtracts the maximum before exponentiation; shifting
//     the input by a constant never changes the result.
//   - BatchedMatMul is the building block for per-relation projections.
package matrix
