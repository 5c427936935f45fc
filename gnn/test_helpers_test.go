// SPDX-License-Identifier: MIT
// Package gnn_test contains shared fixtures.
//
// Purpose:
//   - Small hand-checkable graphs and weights with closed-form outputs.
//   - Helpers that fail the test on construction errors.

package gnn_test

import (
	"testing"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/builder"
	"github.com/katalvlaran/lvgnn/matrix"
	"github.com/stretchr/testify/require"
)

// goldenW maps five one-hot node features to three latent dimensions.
var goldenW = [][]float64{
	{1, 0, 0.5},
	{0, 1, 0.5},
	{1, 1, 0},
	{0.5, 0, 1},
	{0, 0.5, 1},
}

// goldenAttention scores 1·h_src[0] - 0.5·h_src[2] + 0.5·h_dst[0] + h_dst[2].
var goldenAttention = []float64{1, 0, -0.5, 0.5, 0, 1}

const goldenSlope = 0.2

// goldenGAT is the expected attention output for identity features, goldenW,
// goldenAttention and the undirected 5-cycle with self-loops.
var goldenGAT = [][]float64{
	{0.6045, 0.3090, 0.5866},
	{0.8613, 0.6229, 0.2579},
	{0.7156, 0.7776, 0.3090},
	{0.7441, 0.6987, 0.3715},
	{0.7028, 0.0814, 0.7157},
}

func mustDense(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(tb, err)

	return m
}

func mustIdentity(tb testing.TB, n int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(tb, err)

	return m
}

// cycle returns the undirected n-cycle, optionally with self-loops.
func cycle(tb testing.TB, n int, loops bool) *adjacency.Adjacency {
	tb.Helper()
	var bopts []builder.BuilderOption
	if loops {
		bopts = append(bopts, builder.WithSelfLoops())
	}
	a, err := builder.Build(bopts, builder.Cycle(n))
	require.NoError(tb, err)

	return a
}

// pathWithIsolated is the undirected path 0-1-2-3 plus an isolated node 4.
func pathWithIsolated(tb testing.TB) *adjacency.Adjacency {
	tb.Helper()
	a, err := builder.Build(nil, builder.Path(4), builder.Nodes(5))
	require.NoError(tb, err)

	return a
}

func requireClose(tb testing.TB, want, got matrix.Matrix, atol float64) {
	tb.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(tb, err)
	require.Truef(tb, ok, "want\n%v\ngot\n%v", want, got)
}
