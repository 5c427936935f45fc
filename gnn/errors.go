// SPDX-License-Identifier: MIT
// Package gnn: sentinel errors and context carriers.
//
// Policy:
//   - Match semantics with errors.Is against the sentinels below.
//   - Recover the failing node, relation or head with errors.As against
//     *NodeError, *RelationError or *HeadError.
//   - Errors are returned at the call that detects them; nothing is retried.

package gnn

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvgnn/adjacency"
	"github.com/katalvlaran/lvgnn/matrix"
)

var (
	// ErrInvalidAdjacency is the adjacency construction sentinel, re-exported.
	ErrInvalidAdjacency = adjacency.ErrInvalidAdjacency

	// ErrShapeMismatch reports a dimension mismatch between features, weights,
	// attention vectors, graphs or heads.
	ErrShapeMismatch = matrix.ErrShapeMismatch

	// ErrEmptyInput reports a softmax over an empty set.
	ErrEmptyInput = matrix.ErrEmptyInput

	// ErrZeroDegree reports a node without incoming edges where at least one is required.
	ErrZeroDegree = errors.New("gnn: node has zero degree")

	// ErrInvalidConfig reports a layer, head or network configuration that cannot be built.
	ErrInvalidConfig = errors.New("gnn: invalid configuration")

	// ErrUnsupportedPolicy reports an operation that the layer's policy does not support.
	ErrUnsupportedPolicy = errors.New("gnn: unsupported policy")
)

// Operation tags used in error wrapping.
const (
	opProject          = "Project"
	opProjectRelations = "ProjectRelations"
	opAggregateSum     = "AggregateSum"
	opAggregateMean    = "AggregateMean"
	opScoreEdges       = "ScoreEdges"
	opNormalize        = "NormalizeScores"
	opAttention        = "AggregateAttention"
	opRelational       = "AggregateRelational"
	opNewLayer         = "NewLayer"
	opForward          = "Layer.Forward"
	opSetWeights       = "Layer.SetWeights"
	opSetAttention     = "Layer.SetAttention"
	opNewMultiHead     = "NewMultiHead"
	opMultiHead        = "MultiHead.Forward"
	opNewNetwork       = "NewNetwork"
	opNetwork          = "Network.Forward"
	opConfig           = "NetworkConfig"
)

// gnnErrorf wraps err with an operation tag. Only call with a non-nil err.
func gnnErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// NodeError attaches the offending node index to an error.
type NodeError struct {
	Node int
	Err  error
}

func (e *NodeError) Error() string { return fmt.Sprintf("node %d: %v", e.Node, e.Err) }

// Unwrap exposes the underlying sentinel.
func (e *NodeError) Unwrap() error { return e.Err }

// RelationError attaches the offending relation index to an error.
type RelationError struct {
	Relation int
	Err      error
}

func (e *RelationError) Error() string { return fmt.Sprintf("relation %d: %v", e.Relation, e.Err) }

// Unwrap exposes the underlying error.
func (e *RelationError) Unwrap() error { return e.Err }

// HeadError attaches the offending attention head index to an error.
type HeadError struct {
	Head int
	Err  error
}

func (e *HeadError) Error() string { return fmt.Sprintf("head %d: %v", e.Head, e.Err) }

// Unwrap exposes the underlying error.
func (e *HeadError) Unwrap() error { return e.Err }
