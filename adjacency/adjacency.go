// SPDX-License-Identifier: MIT

// Package adjacency - single-relation adjacency.
//
// Purpose:
//   - Validate and hold an N×N {0,1} matrix.
//   - Answer "which sources send into node i" in ascending order, O(deg) per query.
//
// Complexity quicksheet:
//   - New/FromDense: O(N²); FromEdges: O(N² + E); NeighborsOf: O(deg);
//     ToEdgeList: O(E); Symmetrize/AddSelfLoops: O(N²).

package adjacency

import (
	"fmt"

	"github.com/katalvlaran/lvgnn/matrix"
)

// Structure is the topology accepted by graph layers: one or more relations
// over a shared node set. *Adjacency is the R=1 case; *Relational is the stack.
type Structure interface {
	// Nodes returns N, the node count shared by every relation.
	Nodes() int

	// Relations returns R ≥ 1.
	Relations() int

	// Relation returns the r-th relation slice or ErrRelationOutOfRange.
	Relation(r int) (*Adjacency, error)
}

// Adjacency is an immutable N×N {0,1} matrix with cached incoming-neighbor lists.
type Adjacency struct {
	n     int
	cells []float64 // row-major 0/1 entries, len == n*n
	in    [][]int   // in[i] = ascending j with cells[i*n+j] == 1
	edges int
}

var (
	_ Structure = (*Adjacency)(nil)
	_ Structure = (*Relational)(nil)
)

// New builds an Adjacency from literal rows.
//
// Implementation:
//   - Stage 1: validate non-empty square shape.
//   - Stage 2: validate every entry ∈ {0,1}; report the first offending cell.
//   - Stage 3: apply options (symmetrize, then self-loops) and index neighbors.
//
// Errors:
//   - ErrInvalidAdjacency (wrapped with the offending row/cell).
//
// Complexity:
//   - Time O(N²), Space O(N²).
func New(rows [][]float64, opts ...Option) (*Adjacency, error) {
	n := len(rows)
	if n == 0 {
		return nil, adjErrorf(methodNew, fmt.Errorf("empty matrix: %w", ErrInvalidAdjacency))
	}
	cells := make([]float64, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, adjErrorf(methodNew, fmt.Errorf("row %d has %d entries, want %d (not square): %w", i, len(row), n, ErrInvalidAdjacency))
		}
		copy(cells[i*n:], row)
	}
	if err := validateBinary(cells, n); err != nil {
		return nil, adjErrorf(methodNew, err)
	}

	return build(n, cells, gatherOptions(opts...)), nil
}

// FromDense builds an Adjacency from any square matrix.Matrix with {0,1} entries.
// Same validation and options as New. Complexity: O(N²).
func FromDense(m matrix.Matrix, opts ...Option) (*Adjacency, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, adjErrorf(methodFromDense, fmt.Errorf("%v: %w", err, ErrInvalidAdjacency))
	}
	if m.Rows() != m.Cols() {
		return nil, adjErrorf(methodFromDense, fmt.Errorf("shape %dx%d is not square: %w", m.Rows(), m.Cols(), ErrInvalidAdjacency))
	}
	d, err := matrix.AsDense(m)
	if err != nil {
		return nil, adjErrorf(methodFromDense, err)
	}
	n := d.Rows()
	cells := d.Data()
	if err = validateBinary(cells, n); err != nil {
		return nil, adjErrorf(methodFromDense, err)
	}

	return build(n, cells, gatherOptions(opts...)), nil
}

// FromEdges builds an Adjacency over n nodes from parallel (src, dst) slices,
// setting A[dst][src] = 1 for every pair. Repeated pairs collapse to one edge.
//
// Errors:
//   - ErrInvalidAdjacency for n ≤ 0, len(src) != len(dst), or endpoints outside [0,n).
//
// Complexity:
//   - Time O(N² + E), Space O(N²).
func FromEdges(n int, src, dst []int, opts ...Option) (*Adjacency, error) {
	if n <= 0 {
		return nil, adjErrorf(methodFromEdges, fmt.Errorf("n=%d: %w", n, ErrInvalidAdjacency))
	}
	if len(src) != len(dst) {
		return nil, adjErrorf(methodFromEdges, fmt.Errorf("len(src)=%d != len(dst)=%d: %w", len(src), len(dst), ErrInvalidAdjacency))
	}
	cells := make([]float64, n*n)
	for k := range src {
		u, v := src[k], dst[k]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, adjErrorf(methodFromEdges, fmt.Errorf("edge %d (%d→%d) outside [0,%d): %w", k, u, v, n, ErrInvalidAdjacency))
		}
		cells[v*n+u] = 1
	}

	return build(n, cells, gatherOptions(opts...)), nil
}

// validateBinary reports the first entry not in {0,1} (row-major scan order).
func validateBinary(cells []float64, n int) error {
	for idx, v := range cells {
		if v != 0 && v != 1 {
			return fmt.Errorf("entry (%d,%d)=%g not in {0,1}: %w", idx/n, idx%n, v, ErrInvalidAdjacency)
		}
	}

	return nil
}

// build applies options in the fixed order and indexes incoming neighbors.
// cells is owned by the result afterwards.
func build(n int, cells []float64, o options) *Adjacency {
	if o.symmetrize {
		symmetrizeInPlace(cells, n)
	}
	if o.selfLoops {
		for i := 0; i < n; i++ {
			cells[i*n+i] = 1
		}
	}
	a := &Adjacency{n: n, cells: cells, in: make([][]int, n)}
	for i := 0; i < n; i++ { // fixed i→j order yields ascending neighbor lists
		for j := 0; j < n; j++ {
			if cells[i*n+j] == 1 {
				a.in[i] = append(a.in[i], j)
				a.edges++
			}
		}
	}

	return a
}

// symmetrizeInPlace sets A = clip(A + Aᵀ, max=1) on the upper/lower pairs.
func symmetrizeInPlace(cells []float64, n int) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cells[i*n+j] == 1 || cells[j*n+i] == 1 {
				cells[i*n+j], cells[j*n+i] = 1, 1
			}
		}
	}
}

// Nodes returns N.
func (a *Adjacency) Nodes() int { return a.n }

// Relations returns 1: a plain Adjacency is a single relation.
func (a *Adjacency) Relations() int { return 1 }

// Relation returns a itself for r == 0.
func (a *Adjacency) Relation(r int) (*Adjacency, error) {
	if r != 0 {
		return nil, adjErrorf(methodRelation, fmt.Errorf("r=%d of 1: %w", r, ErrRelationOutOfRange))
	}

	return a, nil
}

// EdgeCount returns the number of nonzero entries (self-loops included).
func (a *Adjacency) EdgeCount() int { return a.edges }

// HasEdge reports whether src → dst exists. Out-of-range indices report false.
func (a *Adjacency) HasEdge(src, dst int) bool {
	if src < 0 || src >= a.n || dst < 0 || dst >= a.n {
		return false
	}

	return a.cells[dst*a.n+src] == 1
}

// NeighborsOf returns, in ascending order, the source nodes with an edge into node.
// The slice is a copy; callers may modify it.
//
// Errors: ErrNodeOutOfRange.
// Complexity: O(deg(node)).
func (a *Adjacency) NeighborsOf(node int) ([]int, error) {
	if node < 0 || node >= a.n {
		return nil, adjErrorf(methodNeighborsOf, fmt.Errorf("node %d of %d: %w", node, a.n, ErrNodeOutOfRange))
	}
	out := make([]int, len(a.in[node]))
	copy(out, a.in[node])

	return out, nil
}

// InDegrees returns deg[i] = number of incoming edges of i (row sums).
// Complexity: O(N).
func (a *Adjacency) InDegrees() []float64 {
	out := make([]float64, a.n)
	for i, nb := range a.in {
		out[i] = float64(len(nb))
	}

	return out
}

// IsSymmetric reports whether A == Aᵀ (undirected semantics).
// Complexity: O(N²).
func (a *Adjacency) IsSymmetric() bool {
	for i := 0; i < a.n; i++ {
		for j := i + 1; j < a.n; j++ {
			if a.cells[i*a.n+j] != a.cells[j*a.n+i] {
				return false
			}
		}
	}

	return true
}

// Symmetrize returns the undirected closure clip(A + Aᵀ, max=1) as a new value.
// Complexity: O(N²).
func (a *Adjacency) Symmetrize() *Adjacency {
	return build(a.n, a.copyCells(), options{symmetrize: true})
}

// AddSelfLoops returns a copy with every diagonal entry set to 1.
// Complexity: O(N²).
func (a *Adjacency) AddSelfLoops() *Adjacency {
	return build(a.n, a.copyCells(), options{selfLoops: true})
}

// Dense returns a copy of the matrix as *matrix.Dense (N×N).
// Complexity: O(N²).
func (a *Adjacency) Dense() *matrix.Dense {
	d, _ := matrix.NewDenseData(a.n, a.n, a.cells) // shape is valid by construction

	return d
}

// Rows returns a copy of the matrix as literal rows (handy for fixtures and YAML).
func (a *Adjacency) Rows() [][]float64 {
	out := make([][]float64, a.n)
	for i := range out {
		out[i] = append([]float64(nil), a.cells[i*a.n:(i+1)*a.n]...)
	}

	return out
}

func (a *Adjacency) copyCells() []float64 {
	return append([]float64(nil), a.cells...)
}
