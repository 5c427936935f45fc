// SPDX-License-Identifier: MIT

package gnn_test

import (
	"fmt"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/builder"
	"github.com/katalvlaran/lvgnn/gnn"
	"github.com/katalvlaran/lvgnn/matrix"
)

// ExampleLayer_Forward runs degree-normalized aggregation on a 5-cycle with
// injected weights.
func ExampleLayer_Forward() {
	a := builder.MustBuild([]builder.BuilderOption{builder.WithSelfLoops()}, builder.Cycle(5))
	x, _ := matrix.NewIdentity(5)
	w, _ := matrix.NewDenseFrom([][]float64{{3}, {0}, {0}, {0}, {0}})

	l, _ := gnn.NewLayer(5, 1, gnn.PolicyMean)
	_ = l.SetWeights(0, w)
	out, _ := l.Forward(x, a)
	fmt.Println(out.Data())
	// Output:
	// [1 1 0 0 1]
}

// ExampleMultiHead shows the width of concatenated heads.
func ExampleMultiHead() {
	a := builder.MustBuild([]builder.BuilderOption{builder.WithSelfLoops()}, builder.Cycle(4))
	x, _ := matrix.NewIdentity(4)

	heads := make([]*gnn.Layer, 3)
	for k := range heads {
		heads[k], _ = gnn.NewLayer(4, 2, gnn.PolicyAttention, gnn.WithSeed(int64(k+1)))
	}
	mh, _ := gnn.NewMultiHead(heads, gnn.MergeConcat)
	out, _ := mh.Forward(x, a)
	fmt.Println(out.Rows(), out.Cols())
	// Output:
	// 4 6
}

// ExampleLayer_AttentionWeights inspects the normalized weights of node 0.
func ExampleLayer_AttentionWeights() {
	a, _ := adjacency.FromEdges(3, []int{1, 2}, []int{0, 0}, adjacency.WithSelfLoops())
	x, _ := matrix.NewIdentity(3)
	l, _ := gnn.NewLayer(3, 1, gnn.PolicyAttention)
	w, _ := matrix.NewDenseFrom([][]float64{{0}, {1}, {1}})
	_ = l.SetWeights(0, w)
	_ = l.SetAttention([]float64{1, 0})

	s, _ := l.AttentionWeights(x, a)
	for k := range s.Src {
		if s.Dst[k] == 0 {
			fmt.Printf("%d→0 %.3f\n", s.Src[k], s.Alpha[k])
		}
	}
	// Output:
	// 0→0 0.155
	// 1→0 0.422
	// 2→0 0.422
}
