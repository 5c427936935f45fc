// SPDX-License-Identifier: MIT
// Package matrix_test contains shared fixtures.
//
// Purpose:
//   - Provide small deterministic matrices and a wrapper that forces the
//     non-*Dense code paths.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvgnn/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels through their generic (At-based) path.
type hide struct{ matrix.Matrix }

// mustDenseFrom builds a Dense from literal rows or fails the test.
func mustDenseFrom(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(tb, err)

	return m
}

// randDense fills an r×c Dense from U(-1,1) with a fixed seed.
func randDense(tb testing.TB, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 2*rng.Float64() - 1
	}
	m, err := matrix.NewDenseData(r, c, data)
	require.NoError(tb, err)

	return m
}

// requireClose asserts element-wise closeness within atol.
func requireClose(tb testing.TB, want, got matrix.Matrix, atol float64) {
	tb.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(tb, err)
	require.Truef(tb, ok, "want\n%v\ngot\n%v", want, got)
}
