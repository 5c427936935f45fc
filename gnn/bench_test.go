// SPDX-License-Identifier: MIT
// Package gnn_test provides benchmarks for layer forward passes on
// deterministic random graphs.

package gnn_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/builder"
	"github.com/katalvlaran/lvgnn/gnn"
	"github.com/katalvlaran/lvgnn/matrix"
)

var benchNodes = []int{64, 256}

var sinkOut *matrix.Dense

func benchGraph(b *testing.B, n int) (*adjacency.Adjacency, *matrix.Dense) {
	b.Helper()
	a, err := builder.Build(
		[]builder.BuilderOption{builder.WithSeed(int64(n)), builder.WithSelfLoops()},
		builder.RandomSparse(n, 0.05),
	)
	if err != nil {
		b.Fatal(err)
	}
	x, err := matrix.NewIdentity(n)
	if err != nil {
		b.Fatal(err)
	}
	return a, x
}

func BenchmarkLayerForward(b *testing.B) {
	for _, policy := range []gnn.Policy{gnn.PolicySum, gnn.PolicyMean, gnn.PolicyAttention} {
		for _, n := range benchNodes {
			b.Run(fmt.Sprintf("%s/n=%d", policy, n), func(b *testing.B) {
				a, x := benchGraph(b, n)
				l, err := gnn.NewLayer(n, 16, policy, gnn.WithSeed(1))
				if err != nil {
					b.Fatal(err)
				}
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if sinkOut, err = l.Forward(x, a); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkMultiHead(b *testing.B) {
	for _, parallel := range []bool{false, true} {
		b.Run(fmt.Sprintf("parallel=%t", parallel), func(b *testing.B) {
			a, x := benchGraph(b, 256)
			heads := make([]*gnn.Layer, 8)
			for k := range heads {
				h, err := gnn.NewLayer(256, 8, gnn.PolicyAttention, gnn.WithSeed(int64(k+1)))
				if err != nil {
					b.Fatal(err)
				}
				heads[k] = h
			}
			var opts []gnn.MultiHeadOption
			if parallel {
				opts = append(opts, gnn.WithParallelHeads())
			}
			mh, err := gnn.NewMultiHead(heads, gnn.MergeConcat, opts...)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if sinkOut, err = mh.Forward(x, a); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
