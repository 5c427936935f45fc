// SPDX-License-Identifier: MIT

// Package gnn - deterministic parameter initialization.
//
// Goals:
//   - Determinism: same seed ⇒ identical weights across platforms.
//   - Encapsulation: every layer receives an explicit *rand.Rand; there is no
//     package-level random state.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. A layer consumes its RNG only
//     inside NewLayer; share one across layers only when construction is sequential.

package gnn

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvgnn/matrix"
)

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed with
// a SplitMix64 finalizer, so per-layer and per-head streams are decorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// glorotLimit is the Glorot/Xavier uniform bound sqrt(6 / (fanIn + fanOut)).
func glorotLimit(fanIn, fanOut int) float64 {
	return math.Sqrt(6.0 / float64(fanIn+fanOut))
}

// glorotUniform fills a rows×cols matrix from U(-limit, limit) in row-major order.
func glorotUniform(rng *rand.Rand, rows, cols int) (*matrix.Dense, error) {
	limit := glorotLimit(rows, cols)
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = (2*rng.Float64() - 1) * limit
	}
	return matrix.NewDenseData(rows, cols, data)
}

// glorotVector draws an attention vector of length n; it is treated as a
// 1×n parameter (fan-in n, fan-out 1).
func glorotVector(rng *rand.Rand, n int) []float64 {
	limit := glorotLimit(n, 1)
	out := make([]float64, n)
	for i := range out {
		out[i] = (2*rng.Float64() - 1) * limit
	}
	return out
}
