// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the dense kernels,
// using deterministic random fill.

package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvgnn/matrix"
)

var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkT *matrix.Tensor3
	sinkV []float64
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x, y := randDense(b, n, n, 1337), randDense(b, n, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkBatchedMatMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("b=4,n=%d", n), func(b *testing.B) {
			x, err := matrix.Broadcast(randDense(b, n, n, 7), 4)
			if err != nil {
				b.Fatal(err)
			}
			y, err := matrix.Broadcast(randDense(b, n, n/2, 8), 4)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if sinkT, err = matrix.BatchedMatMul(x, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStableSoftmax(b *testing.B) {
	b.ReportAllocs()
	v := randDense(b, 1, 1024, 99).Data()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := matrix.StableSoftmax(v)
		if err != nil {
			b.Fatal(err)
		}
		sinkV = out
	}
}
