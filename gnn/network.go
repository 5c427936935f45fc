// SPDX-License-Identifier: MIT

// Package gnn - stacked layers.
//
// A Network chains Forwarders, applying an elementwise activation after each
// stage. It reproduces the classic two-layer setups:
//
//	GAT: MultiHead(concat, K heads) → ELU → MultiHead(average) → none
//	GCN: Layer(mean) → ReLU → Layer(mean) → none

package gnn

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/matrix"
	"k8s.io/klog/v2"
)

// Forwarder is one inference stage over a graph.
// *Layer, *MultiHead and *Network implement it.
type Forwarder interface {
	Forward(features matrix.Matrix, g adjacency.Structure) (*matrix.Dense, error)
	InDim() int
	OutDim() int
}

var (
	_ Forwarder = (*Layer)(nil)
	_ Forwarder = (*MultiHead)(nil)
	_ Forwarder = (*Network)(nil)
)

// Activation is an elementwise nonlinearity applied between stages.
type Activation int

const (
	// ActivationNone passes values through.
	ActivationNone Activation = iota
	// ActivationReLU is max(0, x).
	ActivationReLU
	// ActivationELU is x for x>0, else α(eˣ-1) with α = matrix.DefaultELUAlpha.
	ActivationELU
	// ActivationLeakyReLU uses matrix.DefaultNegativeSlope.
	ActivationLeakyReLU
)

var activationNames = [...]string{
	ActivationNone:      "none",
	ActivationReLU:      "relu",
	ActivationELU:       "elu",
	ActivationLeakyReLU: "leaky_relu",
}

// String returns the canonical activation name.
func (a Activation) String() string {
	if a < 0 || int(a) >= len(activationNames) {
		return fmt.Sprintf("Activation(%d)", int(a))
	}
	return activationNames[a]
}

// ParseActivation maps a case-insensitive name to an Activation; "" is none.
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "identity":
		return ActivationNone, nil
	case "relu":
		return ActivationReLU, nil
	case "elu":
		return ActivationELU, nil
	case "leaky_relu", "leakyrelu", "leaky":
		return ActivationLeakyReLU, nil
	}
	return 0, fmt.Errorf("unknown activation %q: %w", s, ErrInvalidConfig)
}

// Apply evaluates the activation on every element of m.
func (a Activation) Apply(m matrix.Matrix) (*matrix.Dense, error) {
	switch a {
	case ActivationNone:
		return matrix.AsDense(m)
	case ActivationReLU:
		return matrix.ReLU(m)
	case ActivationELU:
		return matrix.ELU(m, matrix.DefaultELUAlpha)
	case ActivationLeakyReLU:
		return matrix.LeakyRectify(m, matrix.DefaultNegativeSlope)
	}
	return nil, fmt.Errorf("activation %s: %w", a, ErrInvalidConfig)
}

// Stage pairs a Forwarder with the activation applied to its output.
type Stage struct {
	Forwarder  Forwarder
	Activation Activation
}

// Network is an ordered stack of stages.
type Network struct {
	name   string
	stages []Stage
}

// NewNetwork validates that consecutive stages chain (OutDim of stage k equals
// InDim of stage k+1) and returns the stack.
//
// Errors:
//   - ErrInvalidConfig for no stages, a nil Forwarder, an unknown activation
//     or a dimension break between stages.
func NewNetwork(name string, stages ...Stage) (*Network, error) {
	if len(stages) == 0 {
		return nil, gnnErrorf(opNewNetwork, fmt.Errorf("no stages: %w", ErrInvalidConfig))
	}
	for k, s := range stages {
		if s.Forwarder == nil {
			return nil, gnnErrorf(opNewNetwork, fmt.Errorf("stage %d has no forwarder: %w", k, ErrInvalidConfig))
		}
		if s.Activation < ActivationNone || s.Activation > ActivationLeakyReLU {
			return nil, gnnErrorf(opNewNetwork, fmt.Errorf("stage %d: activation %s: %w", k, s.Activation, ErrInvalidConfig))
		}
		if k > 0 && stages[k-1].Forwarder.OutDim() != s.Forwarder.InDim() {
			return nil, gnnErrorf(opNewNetwork, fmt.Errorf("stage %d expects %d inputs, stage %d produces %d: %w",
				k, s.Forwarder.InDim(), k-1, stages[k-1].Forwarder.OutDim(), ErrInvalidConfig))
		}
	}

	return &Network{name: name, stages: append([]Stage(nil), stages...)}, nil
}

// Forward runs every stage in order, feeding each output (after activation)
// into the next stage.
func (n *Network) Forward(features matrix.Matrix, g adjacency.Structure) (*matrix.Dense, error) {
	x := features
	var out *matrix.Dense
	for k, s := range n.stages {
		h, err := s.Forwarder.Forward(x, g)
		if err != nil {
			return nil, gnnErrorf(opNetwork, fmt.Errorf("stage %d: %w", k, err))
		}
		if out, err = s.Activation.Apply(h); err != nil {
			return nil, gnnErrorf(opNetwork, fmt.Errorf("stage %d: %w", k, err))
		}
		klog.V(2).Infof("gnn: network %q stage %d -> %dx%d (%s)", n.name, k, out.Rows(), out.Cols(), s.Activation)
		x = out
	}

	return out, nil
}

// Name returns the network label.
func (n *Network) Name() string { return n.name }

// Stages returns a copy of the stage list.
func (n *Network) Stages() []Stage { return append([]Stage(nil), n.stages...) }

// InDim returns the input dimension of the first stage.
func (n *Network) InDim() int { return n.stages[0].Forwarder.InDim() }

// OutDim returns the output dimension of the last stage.
func (n *Network) OutDim() int { return n.stages[len(n.stages)-1].Forwarder.OutDim() }
