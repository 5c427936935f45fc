// SPDX-License-Identifier: MIT

package adjacency

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAdjacency is returned at construction for a malformed structure:
	// empty, non-square, entries outside {0,1}, edge endpoints out of range, or
	// relation slices with differing node counts.
	ErrInvalidAdjacency = errors.New("adjacency: invalid adjacency structure")

	// ErrNodeOutOfRange indicates a node index outside [0, N).
	ErrNodeOutOfRange = errors.New("adjacency: node index out of range")

	// ErrRelationOutOfRange indicates a relation index outside [0, R).
	ErrRelationOutOfRange = errors.New("adjacency: relation index out of range")
)

// Method tags for error context.
const (
	methodNew           = "New"
	methodFromDense     = "FromDense"
	methodFromEdges     = "FromEdges"
	methodNeighborsOf   = "NeighborsOf"
	methodRelation      = "Relation"
	methodNewRelational = "NewRelational"
)

// adjErrorf wraps err with a method tag while preserving it for errors.Is.
func adjErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
