// SPDX-License-Identifier: MIT

package gnn_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/builder"
	"github.com/katalvlaran/lvgnn/gnn"
	"github.com/katalvlaran/lvgnn/matrix"
	"github.com/stretchr/testify/require"
)

func TestScoreEdges_RawAndLeaky(t *testing.T) {
	t.Parallel()

	// edges 1→0 and 2→0
	a, err := adjacency.FromEdges(3, []int{1, 2}, []int{0, 0})
	require.NoError(t, err)
	h := mustDense(t, [][]float64{{1, 0}, {2, 0}, {-3, 0}})
	att := []float64{1, 0, 0.5, 0} // raw = h_src[0] + 0.5*h_dst[0]

	s, err := gnn.ScoreEdges(a, h, att, 0.1)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.Equal(t, []int{1, 2}, s.Src)
	require.Equal(t, []int{0, 0}, s.Dst)
	require.InDeltaSlice(t, []float64{2.5, -2.5}, s.Raw, 1e-12)
	require.InDeltaSlice(t, []float64{2.5, -0.25}, s.Score, 1e-12)
	require.Nil(t, s.Alpha)

	_, err = gnn.ScoreEdges(a, h, []float64{1, 2, 3}, 0.1)
	require.ErrorIs(t, err, gnn.ErrShapeMismatch)
}

func TestNormalizeScores_SumsToOnePerDestination(t *testing.T) {
	t.Parallel()

	a, err := builder.Build(
		[]builder.BuilderOption{builder.WithSeed(3), builder.WithSelfLoops()},
		builder.RandomSparse(9, 0.4),
	)
	require.NoError(t, err)
	x, err := matrix.NewDenseData(9, 2, []float64{
		0.1, -0.7, 1.3, 0.2, -0.4, 0.9, 2.2, -1.1, 0.0,
		0.5, 0.8, -0.3, 1.7, 0.6, -2.0, 0.4, 0.3, 1.1,
	})
	require.NoError(t, err)

	s, err := gnn.ScoreEdges(a, x, []float64{0.3, -1.2, 0.8, 0.5}, gnn.DefaultNegativeSlope)
	require.NoError(t, err)
	require.NoError(t, gnn.NormalizeScores(s, a.Nodes()))

	sums := make([]float64, a.Nodes())
	for k, dst := range s.Dst {
		require.GreaterOrEqual(t, s.Alpha[k], 0.0)
		sums[dst] += s.Alpha[k]
	}
	for i, v := range sums {
		require.InDeltaf(t, 1.0, v, 1e-6, "node %d", i)
	}
}

func TestNormalizeScores_SingleIncomingEdgeIsExactlyOne(t *testing.T) {
	t.Parallel()

	s := &gnn.EdgeScores{
		Src:   []int{2, 0, 1},
		Dst:   []int{0, 1, 1},
		Score: []float64{-42, 7, 7},
	}
	require.NoError(t, gnn.NormalizeScores(s, 3))
	require.Equal(t, 1.0, s.Alpha[0])
	require.InDeltaSlice(t, []float64{0.5, 0.5}, s.Alpha[1:], 1e-15)

	require.ErrorIs(t, gnn.NormalizeScores(s, 1), gnn.ErrShapeMismatch)
	require.ErrorIs(t, gnn.NormalizeScores(nil, 1), gnn.ErrShapeMismatch)
}

func TestAggregateAttention_Golden(t *testing.T) {
	t.Parallel()

	got, err := gnn.AggregateAttention(cycle(t, 5, true), mustDense(t, goldenW), goldenAttention, goldenSlope, false)
	require.NoError(t, err)
	requireClose(t, mustDense(t, goldenGAT), got, 1e-4)
}

func TestAggregateAttention_ZeroVectorIsMean(t *testing.T) {
	t.Parallel()

	a := cycle(t, 5, true)
	h := mustDense(t, goldenW)
	att, err := gnn.AggregateAttention(a, h, make([]float64, 6), gnn.DefaultNegativeSlope, false)
	require.NoError(t, err)
	mean, err := gnn.AggregateMean(a, h)
	require.NoError(t, err)
	requireClose(t, mean, att, 1e-12)
}

func TestAggregateAttention_IsolatedNode(t *testing.T) {
	t.Parallel()

	a := pathWithIsolated(t)
	h := mustIdentity(t, 5)
	att := []float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 1}

	got, err := gnn.AggregateAttention(a, h, att, gnn.DefaultNegativeSlope, false)
	require.NoError(t, err)
	row, _ := got.Row(4)
	require.Equal(t, []float64{0, 0, 0, 0, 0}, row)
	// node 0 has one neighbor (1), so its output is exactly h_1
	row, _ = got.Row(0)
	require.Equal(t, []float64{0, 1, 0, 0, 0}, row)

	_, err = gnn.AggregateAttention(a, h, att, gnn.DefaultNegativeSlope, true)
	require.ErrorIs(t, err, gnn.ErrZeroDegree)
	var ne *gnn.NodeError
	require.True(t, errors.As(err, &ne))
	require.Equal(t, 4, ne.Node)
}

func TestAggregateAttention_LargeScoresStayFinite(t *testing.T) {
	t.Parallel()

	a := cycle(t, 5, true)
	h := mustDense(t, [][]float64{{900}, {1000}, {950}, {1100}, {800}})
	got, err := gnn.AggregateAttention(a, h, []float64{1, 1}, gnn.DefaultNegativeSlope, false)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(got.Data()))
}
