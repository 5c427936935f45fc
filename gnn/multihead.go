// SPDX-License-Identifier: MIT

// Package gnn - multi-head attention combiner.
//
//	concat:  out = [head_0 ‖ head_1 ‖ … ‖ head_{K-1}]   (N × K·E, head order preserved)
//	average: out = (1/K) Σ_k head_k                     (N × E)
//
// Heads are independent attention layers with their own weights and attention
// vectors. Evaluation order never changes the result: per-head outputs are
// stored by index and merged in ascending head order.

package gnn

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/matrix"
	"k8s.io/klog/v2"
)

// MergeMode selects how head outputs are combined.
type MergeMode int

const (
	// MergeConcat concatenates head outputs column-wise.
	MergeConcat MergeMode = iota

	// MergeAverage averages head outputs elementwise.
	MergeAverage
)

// String returns "concat" or "average".
func (m MergeMode) String() string {
	switch m {
	case MergeConcat:
		return "concat"
	case MergeAverage:
		return "average"
	}
	return fmt.Sprintf("MergeMode(%d)", int(m))
}

// ParseMergeMode maps "concat"/"cat" and "average"/"mean"/"avg" to a MergeMode.
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "concat", "cat":
		return MergeConcat, nil
	case "average", "mean", "avg":
		return MergeAverage, nil
	}
	return 0, fmt.Errorf("unknown merge mode %q: %w", s, ErrInvalidConfig)
}

// MultiHead runs K attention heads on the same input and merges their outputs.
type MultiHead struct {
	heads    []*Layer
	mode     MergeMode
	parallel bool
	name     string
}

// NewMultiHead combines heads under mode.
//
// Errors:
//   - ErrInvalidConfig: no heads, a nil head, an unknown mode, or heads that
//     disagree on input dimension.
//   - ErrUnsupportedPolicy (in *HeadError): a head not using PolicyAttention.
//
// Panics on a nil MultiHeadOption.
func NewMultiHead(heads []*Layer, mode MergeMode, opts ...MultiHeadOption) (*MultiHead, error) {
	var cfg multiHeadConfig
	for _, opt := range opts {
		if opt == nil {
			panic("gnn: nil MultiHeadOption")
		}
		opt(&cfg)
	}
	if len(heads) == 0 {
		return nil, gnnErrorf(opNewMultiHead, fmt.Errorf("no heads: %w", ErrInvalidConfig))
	}
	if mode != MergeConcat && mode != MergeAverage {
		return nil, gnnErrorf(opNewMultiHead, fmt.Errorf("merge mode %s: %w", mode, ErrInvalidConfig))
	}
	for k, h := range heads {
		if h == nil {
			return nil, gnnErrorf(opNewMultiHead, &HeadError{Head: k, Err: fmt.Errorf("nil head: %w", ErrInvalidConfig)})
		}
		if h.Policy() != PolicyAttention {
			return nil, gnnErrorf(opNewMultiHead, &HeadError{Head: k, Err: fmt.Errorf("policy %s: %w", h.Policy(), ErrUnsupportedPolicy)})
		}
		if h.InDim() != heads[0].InDim() {
			return nil, gnnErrorf(opNewMultiHead, &HeadError{Head: k, Err: fmt.Errorf("input dim %d, head 0 has %d: %w", h.InDim(), heads[0].InDim(), ErrInvalidConfig)})
		}
	}

	return &MultiHead{
		heads:    append([]*Layer(nil), heads...),
		mode:     mode,
		parallel: cfg.parallel,
		name:     cfg.name,
	}, nil
}

// Forward evaluates every head and merges the results.
//
// Errors:
//   - The first failing head's error (lowest index) wrapped in *HeadError.
//   - ErrShapeMismatch in *HeadError when averaging heads of different widths.
func (m *MultiHead) Forward(features matrix.Matrix, g adjacency.Structure) (*matrix.Dense, error) {
	klog.V(1).Infof("gnn: multihead %q heads=%d merge=%s parallel=%t", m.name, len(m.heads), m.mode, m.parallel)

	outs, err := forEachIndex(len(m.heads), m.parallel, func(k int) (*matrix.Dense, error) {
		out, err := m.heads[k].Forward(features, g)
		if err != nil {
			return nil, &HeadError{Head: k, Err: err}
		}
		return out, nil
	})
	if err != nil {
		return nil, gnnErrorf(opMultiHead, err)
	}

	var merged *matrix.Dense
	switch m.mode {
	case MergeConcat:
		merged, err = concatHeads(outs)
	default:
		merged, err = averageHeads(outs)
	}
	if err != nil {
		return nil, gnnErrorf(opMultiHead, err)
	}

	return merged, nil
}

func concatHeads(outs []*matrix.Dense) (*matrix.Dense, error) {
	ms := make([]matrix.Matrix, len(outs))
	for k, o := range outs {
		ms[k] = o
	}
	return matrix.HConcat(ms...)
}

func averageHeads(outs []*matrix.Dense) (*matrix.Dense, error) {
	for k := 1; k < len(outs); k++ {
		if err := matrix.ValidateSameShape(outs[0], outs[k]); err != nil {
			return nil, &HeadError{Head: k, Err: fmt.Errorf("%dx%d vs head 0 %dx%d: %w",
				outs[k].Rows(), outs[k].Cols(), outs[0].Rows(), outs[0].Cols(), ErrShapeMismatch)}
		}
	}
	sum, err := sumInOrder(outs)
	if err != nil {
		return nil, err
	}
	return matrix.Scale(sum, 1/float64(len(outs)))
}

// Heads returns K.
func (m *MultiHead) Heads() int { return len(m.heads) }

// Head returns the k-th head, or nil when k is out of range.
func (m *MultiHead) Head(k int) *Layer {
	if k < 0 || k >= len(m.heads) {
		return nil
	}
	return m.heads[k]
}

// Mode returns the merge mode.
func (m *MultiHead) Mode() MergeMode { return m.mode }

// InDim returns the shared input dimension F.
func (m *MultiHead) InDim() int { return m.heads[0].InDim() }

// OutDim returns Σ_k E_k under concat and E_0 under average.
func (m *MultiHead) OutDim() int {
	if m.mode == MergeAverage {
		return m.heads[0].OutDim()
	}
	total := 0
	for _, h := range m.heads {
		total += h.OutDim()
	}
	return total
}
