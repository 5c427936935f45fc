// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvgnn/matrix"
	"github.com/stretchr/testify/require"
)

func TestMul_KnownProduct(t *testing.T) {
	t.Parallel()

	a := mustDenseFrom(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := mustDenseFrom(t, [][]float64{{1, 0, -1}, {2, 1, 0}})
	want := mustDenseFrom(t, [][]float64{{5, 2, -1}, {11, 4, -3}, {17, 6, -5}})

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, want, got, 0)

	// fallback path agrees with the fast path
	got, err = matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	requireClose(t, want, got, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTransposeAddScale(t *testing.T) {
	t.Parallel()

	a := mustDenseFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	requireClose(t, mustDenseFrom(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}), at, 0)

	sum, err := matrix.Add(a, a)
	require.NoError(t, err)
	scaled, err := matrix.Scale(a, 2)
	require.NoError(t, err)
	requireClose(t, sum, scaled, 0)

	_, err = matrix.Add(a, at)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestScaleRowsAndRowSums(t *testing.T) {
	t.Parallel()

	a := mustDenseFrom(t, [][]float64{{1, 1}, {2, 4}})
	sums, err := matrix.RowSums(a)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 6}, sums)

	got, err := matrix.ScaleRows(a, []float64{0.5, 0.25})
	require.NoError(t, err)
	requireClose(t, mustDenseFrom(t, [][]float64{{0.5, 0.5}, {0.5, 1}}), got, 0)

	_, err = matrix.ScaleRows(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestHConcat(t *testing.T) {
	t.Parallel()

	a := mustDenseFrom(t, [][]float64{{1}, {2}})
	b := mustDenseFrom(t, [][]float64{{3, 4}, {5, 6}})
	got, err := matrix.HConcat(a, hide{b})
	require.NoError(t, err)
	requireClose(t, mustDenseFrom(t, [][]float64{{1, 3, 4}, {2, 5, 6}}), got, 0)

	_, err = matrix.HConcat()
	require.ErrorIs(t, err, matrix.ErrEmptyInput)

	c := mustDenseFrom(t, [][]float64{{1}})
	_, err = matrix.HConcat(a, c)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := mustDenseFrom(t, [][]float64{{1, 2}})
	b := mustDenseFrom(t, [][]float64{{1, 2.0005}})

	ok, err := matrix.AllClose(a, b, 0, 1e-3)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-4)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, mustDenseFrom(t, [][]float64{{1}}), 0, 1)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
}
