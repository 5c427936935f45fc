// SPDX-License-Identifier: MIT

// Package gnn - additive (GAT-style) attention aggregation.
//
// Pipeline per relation:
//   1. ScoreEdges:       raw_e   = a[:E]·h_src + a[E:]·h_dst   (= a·[h_src ‖ h_dst])
//                        score_e = LeakyRelu(raw_e, slope)
//   2. NormalizeScores:  α_e     = softmax over the incoming edges of dst(e) only
//   3. AggregateAttention: out[i] = Σ_{e: dst(e)=i} α_e · h_src(e)
//
// Determinism:
//   - Edges follow adjacency.EdgeList order (destination, then source ascending),
//     so every per-node sum is accumulated in ascending source order.

package gnn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/matrix"
	"k8s.io/klog/v2"
)

// EdgeScores is the sparse per-edge view of one attention pass. All slices are
// parallel and indexed by edge in adjacency.EdgeList order.
type EdgeScores struct {
	Src   []int
	Dst   []int
	Raw   []float64 // a·[h_src ‖ h_dst]
	Score []float64 // LeakyRelu(Raw)
	Alpha []float64 // normalized weights; nil until NormalizeScores
}

// Len returns the number of scored edges.
func (s *EdgeScores) Len() int { return len(s.Src) }

// ScoreEdges computes the unnormalized attention score of every existing edge.
//
// Implementation:
//   - Stage 1: validate adjacency, N rows in projected and len(attention) == 2E.
//   - Stage 2: precompute left[j] = a[:E]·h_j and right[i] = a[E:]·h_i once per node.
//   - Stage 3: raw = left[src] + right[dst]; score = LeakyRelu(raw, slope).
//
// Errors:
//   - ErrInvalidAdjacency, ErrShapeMismatch.
//
// Complexity:
//   - Time O(N·E + |edges|), Space O(N + |edges|).
func ScoreEdges(adj *adjacency.Adjacency, projected matrix.Matrix, attention []float64, negativeSlope float64) (*EdgeScores, error) {
	if err := checkGraphRows(adj, projected); err != nil {
		return nil, gnnErrorf(opScoreEdges, err)
	}
	e := projected.Cols()
	if len(attention) != 2*e {
		return nil, gnnErrorf(opScoreEdges, fmt.Errorf("attention length %d, want 2*%d: %w", len(attention), e, ErrShapeMismatch))
	}
	h, err := matrix.AsDense(projected)
	if err != nil {
		return nil, gnnErrorf(opScoreEdges, err)
	}

	n := adj.Nodes()
	left := make([]float64, n)
	right := make([]float64, n)
	aSrc, aDst := attention[:e], attention[e:]
	for i := 0; i < n; i++ {
		row := h.RawRow(i)
		left[i] = dot(aSrc, row)
		right[i] = dot(aDst, row)
	}

	edges := adj.ToEdgeList()
	out := &EdgeScores{
		Src:   edges.Src,
		Dst:   edges.Dst,
		Raw:   make([]float64, edges.Len()),
		Score: make([]float64, edges.Len()),
	}
	for k := range edges.Src {
		raw := left[edges.Src[k]] + right[edges.Dst[k]]
		out.Raw[k] = raw
		out.Score[k] = matrix.LeakyRelu(raw, negativeSlope)
	}

	return out, nil
}

// NormalizeScores fills scores.Alpha with a softmax over each destination's
// incoming edges. Edges must be grouped by destination (EdgeList order). A node
// with a single incoming edge gets weight exactly 1.
//
// Errors:
//   - ErrShapeMismatch for ragged slices or a destination outside [0, n).
//   - ErrEmptyInput (wrapped in *NodeError) when a softmax cannot be formed.
//
// Complexity:
//   - Time O(|edges|), Space O(max in-degree).
func NormalizeScores(scores *EdgeScores, n int) error {
	if scores == nil {
		return gnnErrorf(opNormalize, fmt.Errorf("nil scores: %w", ErrShapeMismatch))
	}
	m := len(scores.Src)
	if len(scores.Dst) != m || len(scores.Score) != m {
		return gnnErrorf(opNormalize, fmt.Errorf("ragged edge slices: %w", ErrShapeMismatch))
	}
	alpha := make([]float64, m)
	for lo := 0; lo < m; {
		dst := scores.Dst[lo]
		if dst < 0 || dst >= n {
			return gnnErrorf(opNormalize, fmt.Errorf("edge %d destination %d outside [0,%d): %w", lo, dst, n, ErrShapeMismatch))
		}
		hi := lo + 1
		for hi < m && scores.Dst[hi] == dst {
			hi++
		}
		w, err := matrix.StableSoftmax(scores.Score[lo:hi])
		if err != nil {
			return gnnErrorf(opNormalize, &NodeError{Node: dst, Err: err})
		}
		copy(alpha[lo:hi], w)
		lo = hi
	}
	scores.Alpha = alpha

	return nil
}

// AggregateAttention runs the full attention pipeline for one relation and
// returns the N×E aggregated embeddings.
//
// Zero-degree nodes produce a zero row, or *NodeError{ErrZeroDegree} for the
// lowest such node when requireNeighbor is set.
//
// Complexity:
//   - Time O(N·E + |edges|·E), Space O(N·E + |edges|).
func AggregateAttention(adj *adjacency.Adjacency, projected matrix.Matrix, attention []float64, negativeSlope float64, requireNeighbor bool) (*matrix.Dense, error) {
	out, _, err := attend(adj, projected, attention, negativeSlope, requireNeighbor)
	if err != nil {
		return nil, gnnErrorf(opAttention, err)
	}

	return out, nil
}

// attend is AggregateAttention that also returns the scored edges.
func attend(adj *adjacency.Adjacency, projected matrix.Matrix, attention []float64, negativeSlope float64, requireNeighbor bool) (*matrix.Dense, *EdgeScores, error) {
	scores, err := ScoreEdges(adj, projected, attention, negativeSlope)
	if err != nil {
		return nil, nil, err
	}
	n := adj.Nodes()
	if requireNeighbor {
		for i, d := range adj.InDegrees() {
			if d == 0 {
				return nil, nil, &NodeError{Node: i, Err: ErrZeroDegree}
			}
		}
	}
	if err = NormalizeScores(scores, n); err != nil {
		return nil, nil, err
	}

	h, err := matrix.AsDense(projected)
	if err != nil {
		return nil, nil, err
	}
	e := h.Cols()
	data := make([]float64, n*e)
	for k, src := range scores.Src {
		a := scores.Alpha[k]
		dst := data[scores.Dst[k]*e : (scores.Dst[k]+1)*e]
		for c, v := range h.RawRow(src) {
			dst[c] += a * v
		}
	}
	logAttention(scores)

	out, err := matrix.NewDenseData(n, e, data)
	if err != nil {
		return nil, nil, err
	}

	return out, scores, nil
}

// logAttention dumps per-node attention weights at verbosity 3.
func logAttention(s *EdgeScores) {
	if !klog.V(3).Enabled() {
		return
	}
	for lo := 0; lo < s.Len(); {
		hi := lo + 1
		for hi < s.Len() && s.Dst[hi] == s.Dst[lo] {
			hi++
		}
		klog.Infof("gnn: attention node=%d sources=%v alpha=%v", s.Dst[lo], s.Src[lo:hi], s.Alpha[lo:hi])
		lo = hi
	}
}

// dot returns Σ a[k]·b[k] over the shorter length.
func dot(a, b []float64) float64 {
	var s float64
	for k := 0; k < len(a) && k < len(b); k++ {
		s += a[k] * b[k]
	}
	return s
}

// finiteSlope reports whether a negative slope is usable.
func finiteSlope(s float64) bool {
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s >= 0
}
