// SPDX-License-Identifier: MIT

package adjacency_test

import (
	"testing"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/stretchr/testify/require"
)

func TestToEdgeList_OrderedByDestinationThenSource(t *testing.T) {
	t.Parallel()

	a, err := adjacency.FromEdges(4,
		[]int{3, 0, 2, 1, 0},
		[]int{0, 2, 0, 3, 3},
	)
	require.NoError(t, err)

	el := a.ToEdgeList()
	require.Equal(t, 5, el.Len())
	require.Equal(t, []int{2, 3, 0, 0, 1}, el.Src)
	require.Equal(t, []int{0, 0, 2, 3, 3}, el.Dst)

	// every edge in the list exists, and the list covers EdgeCount
	for k := range el.Src {
		require.True(t, a.HasEdge(el.Src[k], el.Dst[k]))
	}
	require.Equal(t, a.EdgeCount(), el.Len())

	require.Equal(t, []int{0, 2, 2, 3, 5}, a.Offsets())
}

func TestToEdgeList_Empty(t *testing.T) {
	t.Parallel()

	a, err := adjacency.New([][]float64{{0, 0}, {0, 0}})
	require.NoError(t, err)
	el := a.ToEdgeList()
	require.Zero(t, el.Len())
	require.Equal(t, []int{0, 0, 0}, a.Offsets())
}
