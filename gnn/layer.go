// SPDX-License-Identifier: MIT

// Package gnn - Layer, one message-passing step.
//
// Forward pipeline:
//
//	R == 1:  H = X·W;  out = Aggregate_policy(A, H)
//	R  > 1:  H = ProjectRelations(X, [W_0..W_{R-1}]);  out = Σ_r Aggregate_policy(A_r, H_r)
//
// Concurrency:
//   - Forward takes a read lock and may run concurrently with other Forward calls.
//   - SetWeights and SetAttention take the write lock; they never interleave
//     with a running Forward, which sees either the old or the new parameters.

package gnn

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/matrix"
	"k8s.io/klog/v2"
)

// Layer owns the parameters of one aggregation step: R weight matrices (F×E)
// and, under PolicyAttention, one attention vector of length 2E.
type Layer struct {
	mu sync.RWMutex

	name            string
	inDim, outDim   int
	policy          Policy
	relations       int
	weights         []*matrix.Dense
	attention       []float64
	negativeSlope   float64
	requireNeighbor bool
	parallel        bool
}

// NewLayer builds a layer mapping F=inDim features to E=outDim embeddings.
// Parameters are Glorot-uniform from the configured RNG, so equal seeds give
// equal layers.
//
// Errors:
//   - ErrInvalidConfig for non-positive dimensions or an unknown policy.
//   - ErrUnsupportedPolicy for PolicyAttention with more than one relation.
//
// Panics on a nil Option.
func NewLayer(inDim, outDim int, policy Policy, opts ...Option) (*Layer, error) {
	cfg := defaultLayerConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("gnn: nil Option")
		}
		opt(&cfg)
	}
	if inDim <= 0 || outDim <= 0 {
		return nil, gnnErrorf(opNewLayer, fmt.Errorf("dimensions %dx%d: %w", inDim, outDim, ErrInvalidConfig))
	}
	if !policy.Valid() {
		return nil, gnnErrorf(opNewLayer, fmt.Errorf("policy %s: %w", policy, ErrInvalidConfig))
	}
	if policy == PolicyAttention && cfg.relations > 1 {
		return nil, gnnErrorf(opNewLayer, fmt.Errorf("attention over %d relations: %w", cfg.relations, ErrUnsupportedPolicy))
	}

	rng := cfg.rng
	if rng == nil {
		rng = rngFromSeed(cfg.seed)
	}
	l := &Layer{
		name:            cfg.name,
		inDim:           inDim,
		outDim:          outDim,
		policy:          policy,
		relations:       cfg.relations,
		weights:         make([]*matrix.Dense, cfg.relations),
		negativeSlope:   cfg.negativeSlope,
		requireNeighbor: cfg.requireNeighbor,
		parallel:        cfg.parallel,
	}
	for r := range l.weights {
		w, err := glorotUniform(rng, inDim, outDim)
		if err != nil {
			return nil, gnnErrorf(opNewLayer, err)
		}
		l.weights[r] = w
	}
	if policy == PolicyAttention {
		l.attention = glorotVector(rng, 2*outDim)
	}

	return l, nil
}

// Forward computes the N×E output embeddings for N×F features on g.
//
// Errors:
//   - ErrShapeMismatch: features not N×F, or g has a relation count other than R.
//   - ErrInvalidAdjacency: nil g.
//   - ErrZeroDegree (in *NodeError): mean policy, or attention with WithRequireNeighbor.
//   - Per-relation failures wrapped in *RelationError when R > 1.
func (l *Layer) Forward(features matrix.Matrix, g adjacency.Structure) (*matrix.Dense, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := l.checkInputs(features, g); err != nil {
		return nil, gnnErrorf(opForward, err)
	}
	if klog.V(1).Enabled() {
		klog.Infof("gnn: layer %q forward nodes=%d relations=%d policy=%s dims=%d->%d",
			l.name, g.Nodes(), l.relations, l.policy, l.inDim, l.outDim)
	}

	var (
		out *matrix.Dense
		err error
	)
	if l.relations == 1 {
		out, err = l.forwardSingle(features, g)
	} else {
		out, err = l.forwardRelational(features, g)
	}
	if err != nil {
		return nil, gnnErrorf(opForward, err)
	}

	return out, nil
}

func (l *Layer) forwardSingle(features matrix.Matrix, g adjacency.Structure) (*matrix.Dense, error) {
	adj, err := g.Relation(0)
	if err != nil {
		return nil, err
	}
	h, err := Project(features, l.weights[0])
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("gnn: layer %q projected %dx%d, edges=%d", l.name, h.Rows(), h.Cols(), adj.EdgeCount())
	if l.policy == PolicyAttention {
		out, _, err := attend(adj, h, l.attention, l.negativeSlope, l.requireNeighbor)
		return out, err
	}

	return aggregateUniform(l.policy, adj, h)
}

func (l *Layer) forwardRelational(features matrix.Matrix, g adjacency.Structure) (*matrix.Dense, error) {
	ms := make([]matrix.Matrix, len(l.weights))
	for r, w := range l.weights {
		ms[r] = w
	}
	w, err := matrix.Stack(ms...)
	if err != nil {
		return nil, err
	}
	h, err := ProjectRelations(features, w)
	if err != nil {
		return nil, err
	}
	if klog.V(2).Enabled() {
		r, n, e := h.Shape()
		klog.Infof("gnn: layer %q projected (%d,%d,%d) parallel=%t", l.name, r, n, e, l.parallel)
	}

	return aggregateRelational(g, h, l.policy, l.parallel)
}

// checkInputs validates features and g against the layer's dimensions.
func (l *Layer) checkInputs(features matrix.Matrix, g adjacency.Structure) error {
	if g == nil {
		return fmt.Errorf("nil structure: %w", ErrInvalidAdjacency)
	}
	if err := matrix.ValidateNotNil(features); err != nil {
		return fmt.Errorf("features: %v: %w", err, ErrShapeMismatch)
	}
	if features.Cols() != l.inDim {
		return fmt.Errorf("features have %d columns, layer expects %d: %w", features.Cols(), l.inDim, ErrShapeMismatch)
	}
	if features.Rows() != g.Nodes() {
		return fmt.Errorf("features have %d rows, graph has %d nodes: %w", features.Rows(), g.Nodes(), ErrShapeMismatch)
	}
	if g.Relations() != l.relations {
		return fmt.Errorf("graph has %d relations, layer expects %d: %w", g.Relations(), l.relations, ErrShapeMismatch)
	}

	return nil
}

// AttentionWeights runs projection and scoring on a single-relation graph and
// returns the normalized per-edge weights (Alpha) in edge-list order.
//
// Errors:
//   - ErrUnsupportedPolicy unless the layer uses PolicyAttention.
//   - The same input errors as Forward.
func (l *Layer) AttentionWeights(features matrix.Matrix, g adjacency.Structure) (*EdgeScores, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.policy != PolicyAttention {
		return nil, gnnErrorf(opAttention, fmt.Errorf("policy %s: %w", l.policy, ErrUnsupportedPolicy))
	}
	if err := l.checkInputs(features, g); err != nil {
		return nil, gnnErrorf(opAttention, err)
	}
	adj, err := g.Relation(0)
	if err != nil {
		return nil, gnnErrorf(opAttention, err)
	}
	h, err := Project(features, l.weights[0])
	if err != nil {
		return nil, gnnErrorf(opAttention, err)
	}
	_, scores, err := attend(adj, h, l.attention, l.negativeSlope, l.requireNeighbor)
	if err != nil {
		return nil, gnnErrorf(opAttention, err)
	}

	return scores, nil
}

// SetWeights replaces the weight matrix of relation r with a copy of w.
//
// Errors:
//   - adjacency.ErrRelationOutOfRange for r outside [0, R).
//   - ErrShapeMismatch when w is nil or not F×E.
//   - matrix.ErrNaNInf for non-finite entries.
func (l *Layer) SetWeights(relation int, w matrix.Matrix) error {
	if relation < 0 || relation >= l.relations {
		return gnnErrorf(opSetWeights, fmt.Errorf("relation %d of %d: %w", relation, l.relations, adjacency.ErrRelationOutOfRange))
	}
	if err := matrix.ValidateNotNil(w); err != nil {
		return gnnErrorf(opSetWeights, fmt.Errorf("%v: %w", err, ErrShapeMismatch))
	}
	if w.Rows() != l.inDim || w.Cols() != l.outDim {
		return gnnErrorf(opSetWeights, fmt.Errorf("weights %dx%d, want %dx%d: %w", w.Rows(), w.Cols(), l.inDim, l.outDim, ErrShapeMismatch))
	}
	d, err := matrix.AsDense(w)
	if err != nil {
		return gnnErrorf(opSetWeights, err)
	}
	data := d.Data()
	if err = matrix.ValidateFinite(data); err != nil {
		return gnnErrorf(opSetWeights, err)
	}
	cp, err := matrix.NewDenseData(l.inDim, l.outDim, data)
	if err != nil {
		return gnnErrorf(opSetWeights, err)
	}

	l.mu.Lock()
	l.weights[relation] = cp
	l.mu.Unlock()

	return nil
}

// SetAttention replaces the attention vector with a copy of a (length 2E).
//
// Errors:
//   - ErrUnsupportedPolicy unless the layer uses PolicyAttention.
//   - ErrShapeMismatch for a length other than 2E.
//   - matrix.ErrNaNInf for non-finite entries.
func (l *Layer) SetAttention(a []float64) error {
	if l.policy != PolicyAttention {
		return gnnErrorf(opSetAttention, fmt.Errorf("policy %s: %w", l.policy, ErrUnsupportedPolicy))
	}
	if len(a) != 2*l.outDim {
		return gnnErrorf(opSetAttention, fmt.Errorf("length %d, want %d: %w", len(a), 2*l.outDim, ErrShapeMismatch))
	}
	if err := matrix.ValidateFinite(a); err != nil {
		return gnnErrorf(opSetAttention, err)
	}
	cp := append([]float64(nil), a...)

	l.mu.Lock()
	l.attention = cp
	l.mu.Unlock()

	return nil
}

// InDim returns F.
func (l *Layer) InDim() int { return l.inDim }

// OutDim returns E.
func (l *Layer) OutDim() int { return l.outDim }

// Policy returns the aggregation policy.
func (l *Layer) Policy() Policy { return l.policy }

// RelationCount returns R.
func (l *Layer) RelationCount() int { return l.relations }

// Name returns the label given with WithName.
func (l *Layer) Name() string { return l.name }

// NegativeSlope returns the attention leaky-rectify slope.
func (l *Layer) NegativeSlope() float64 { return l.negativeSlope }

// Weights returns a copy of the weight matrix of relation r.
func (l *Layer) Weights(relation int) (*matrix.Dense, error) {
	if relation < 0 || relation >= l.relations {
		return nil, fmt.Errorf("Layer.Weights: relation %d of %d: %w", relation, l.relations, adjacency.ErrRelationOutOfRange)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	return matrix.NewDenseData(l.inDim, l.outDim, l.weights[relation].Data())
}

// Attention returns a copy of the attention vector, or nil for uniform policies.
func (l *Layer) Attention() []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.attention == nil {
		return nil
	}
	return append([]float64(nil), l.attention...)
}
