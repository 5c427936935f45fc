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

func TestAggregateRelational_SingleRelationEqualsUniform(t *testing.T) {
	t.Parallel()

	a := cycle(t, 5, true)
	x := mustIdentity(t, 5)
	w := mustDense(t, goldenW)

	for _, policy := range []gnn.Policy{gnn.PolicySum, gnn.PolicyMean} {
		stacked, err := matrix.Stack(w)
		require.NoError(t, err)
		hr, err := gnn.ProjectRelations(x, stacked)
		require.NoError(t, err)
		rel, err := gnn.AggregateRelational(a, hr, policy)
		require.NoError(t, err)

		h, err := gnn.Project(x, w)
		require.NoError(t, err)
		var plain *matrix.Dense
		if policy == gnn.PolicySum {
			plain, err = gnn.AggregateSum(a, h)
		} else {
			plain, err = gnn.AggregateMean(a, h)
		}
		require.NoError(t, err)
		requireClose(t, plain, rel, 1e-12)
	}
}

func TestAggregateRelational_SumsRelations(t *testing.T) {
	t.Parallel()

	r0 := cycle(t, 4, false)
	r1, err := builder.Build([]builder.BuilderOption{builder.WithDirected()}, builder.Star(4))
	require.NoError(t, err)
	g, err := adjacency.NewRelational([]*adjacency.Adjacency{r0, r1})
	require.NoError(t, err)

	h0 := mustDense(t, [][]float64{{1}, {2}, {3}, {4}})
	h1 := mustDense(t, [][]float64{{10}, {20}, {30}, {40}})
	h, err := matrix.Stack(h0, h1)
	require.NoError(t, err)

	got, err := gnn.AggregateRelational(g, h, gnn.PolicySum)
	require.NoError(t, err)
	// relation 0: neighbors i±1; relation 1: leaves receive from hub 0
	requireClose(t, mustDense(t, [][]float64{{6}, {14}, {16}, {14}}), got, 0)

	// mean fails on the hub, which has no incoming edge in relation 1
	_, err = gnn.AggregateRelational(g, h, gnn.PolicyMean)
	require.ErrorIs(t, err, gnn.ErrZeroDegree)
	var re *gnn.RelationError
	require.True(t, errors.As(err, &re))
	require.Equal(t, 1, re.Relation)
	var ne *gnn.NodeError
	require.True(t, errors.As(err, &ne))
	require.Equal(t, 0, ne.Node)

	_, err = gnn.AggregateRelational(g, h, gnn.PolicyAttention)
	require.ErrorIs(t, err, gnn.ErrUnsupportedPolicy)

	one, err := matrix.Stack(h0)
	require.NoError(t, err)
	_, err = gnn.AggregateRelational(g, one, gnn.PolicySum)
	require.ErrorIs(t, err, gnn.ErrShapeMismatch)
}

func TestLayer_ParallelRelationsMatchSequential(t *testing.T) {
	t.Parallel()

	rels := make([]*adjacency.Adjacency, 4)
	for r := range rels {
		a, err := builder.Build(
			[]builder.BuilderOption{builder.WithSeed(int64(r + 1)), builder.WithSelfLoops(), builder.WithDirected()},
			builder.RandomSparse(10, 0.3),
		)
		require.NoError(t, err)
		rels[r] = a
	}
	g, err := adjacency.NewRelational(rels)
	require.NoError(t, err)
	x := mustIdentity(t, 10)

	seq, err := gnn.NewLayer(10, 6, gnn.PolicyMean, gnn.WithRelations(4), gnn.WithSeed(11))
	require.NoError(t, err)
	par, err := gnn.NewLayer(10, 6, gnn.PolicyMean, gnn.WithRelations(4), gnn.WithSeed(11), gnn.WithParallelRelations())
	require.NoError(t, err)

	a, err := seq.Forward(x, g)
	require.NoError(t, err)
	b, err := par.Forward(x, g)
	require.NoError(t, err)
	require.Equal(t, a.Data(), b.Data())

	// equals the explicit per-relation sum
	var want *matrix.Dense
	for r := 0; r < 4; r++ {
		w, err := seq.Weights(r)
		require.NoError(t, err)
		h, err := gnn.Project(x, w)
		require.NoError(t, err)
		part, err := gnn.AggregateMean(rels[r], h)
		require.NoError(t, err)
		if want == nil {
			want = part
			continue
		}
		want, err = matrix.Add(want, part)
		require.NoError(t, err)
	}
	requireClose(t, want, a, 1e-12)
}
