// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvgnn/matrix"
	"github.com/stretchr/testify/require"
)

func TestStableSoftmax_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"single element", []float64{3.7}, []float64{1}},
		{"uniform", []float64{2, 2, 2, 2}, []float64{0.25, 0.25, 0.25, 0.25}},
		{"two values", []float64{0, math.Log(3)}, []float64{0.25, 0.75}},
		{"large magnitudes stay finite", []float64{1000, 1000}, []float64{0.5, 0.5}},
		{"negative infinity gets zero", []float64{math.Inf(-1), 0}, []float64{0, 1}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := matrix.StableSoftmax(tc.in)
			require.NoError(t, err)
			require.InDeltaSlice(t, tc.want, got, 1e-12)
		})
	}
}

func TestStableSoftmax_ShiftInvariant(t *testing.T) {
	t.Parallel()

	base := []float64{0.3, -1.2, 2.5, 0}
	shifted := make([]float64, len(base))
	for i, v := range base {
		shifted[i] = v + 1000
	}
	a, err := matrix.StableSoftmax(base)
	require.NoError(t, err)
	b, err := matrix.StableSoftmax(shifted)
	require.NoError(t, err)
	require.InDeltaSlice(t, a, b, 1e-9)

	var sum float64
	for _, v := range b {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		sum += v
	}
	require.InDelta(t, 1.0, sum, 1e-12)
}

func TestStableSoftmax_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.StableSoftmax(nil)
	require.ErrorIs(t, err, matrix.ErrEmptyInput)

	_, err = matrix.StableSoftmax([]float64{math.Inf(-1), math.Inf(-1)})
	require.ErrorIs(t, err, matrix.ErrEmptyInput)

	_, err = matrix.StableSoftmax([]float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestStableSoftmax_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []float64{1, 2, 3}
	_, err := matrix.StableSoftmax(in)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, in)
}

func TestStableSoftmaxColumns(t *testing.T) {
	t.Parallel()

	m := mustDenseFrom(t, [][]float64{{0, 5}, {0, 5}})
	got, err := matrix.StableSoftmaxColumns(hide{m})
	require.NoError(t, err)
	requireClose(t, mustDenseFrom(t, [][]float64{{0.5, 0.5}, {0.5, 0.5}}), got, 1e-12)

	_, err = matrix.StableSoftmaxColumns(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestLeakyRectify(t *testing.T) {
	t.Parallel()

	require.Equal(t, 2.0, matrix.LeakyRelu(2, 0.2))
	require.Equal(t, -0.4, matrix.LeakyRelu(-2, 0.2))
	require.Zero(t, matrix.LeakyRelu(0, 0.2))

	m := mustDenseFrom(t, [][]float64{{-1, 0, 3}})
	got, err := matrix.LeakyRectify(m, matrix.DefaultNegativeSlope)
	require.NoError(t, err)
	requireClose(t, mustDenseFrom(t, [][]float64{{-0.01, 0, 3}}), got, 1e-15)

	// input untouched
	v, _ := m.At(0, 0)
	require.Equal(t, -1.0, v)
}

func TestActivations(t *testing.T) {
	t.Parallel()

	m := mustDenseFrom(t, [][]float64{{-1, 0.5}})

	relu, err := matrix.ReLU(m)
	require.NoError(t, err)
	requireClose(t, mustDenseFrom(t, [][]float64{{0, 0.5}}), relu, 0)

	elu, err := matrix.ELU(m, matrix.DefaultELUAlpha)
	require.NoError(t, err)
	requireClose(t, mustDenseFrom(t, [][]float64{{math.Exp(-1) - 1, 0.5}}), elu, 1e-12)

	_, err = matrix.ReLU(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
