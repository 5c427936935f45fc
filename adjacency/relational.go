// SPDX-License-Identifier: MIT

// Package adjacency - multi-relational stack.
//
// Contract:
//   - R ≥ 1 slices, all N×N over the same node set.
//   - Directedness is explicit per relation (WithUndirectedRelation); nothing
//     is inferred from the data.

package adjacency

import (
	"fmt"

	"github.com/katalvlaran/lvgnn/matrix"
)

// Relational is an immutable stack of R typed relations sharing N nodes.
type Relational struct {
	n          int
	rels       []*Adjacency
	undirected []bool
}

// NewRelational stacks existing relations. Options may symmetrize individual
// relations or add self-loops to all of them; inputs are not modified.
//
// Errors:
//   - ErrInvalidAdjacency for no relations, nil slices, differing node counts,
//     or an undirected flag naming a relation that does not exist.
//
// Complexity:
//   - O(R) without options; O(R·N²) when options rebuild slices.
func NewRelational(rels []*Adjacency, opts ...RelationalOption) (*Relational, error) {
	if len(rels) == 0 {
		return nil, adjErrorf(methodNewRelational, fmt.Errorf("no relations: %w", ErrInvalidAdjacency))
	}
	o := gatherRelationalOptions(opts...)
	for r := range o.undirected {
		if r >= len(rels) {
			return nil, adjErrorf(methodNewRelational, fmt.Errorf("undirected flag for relation %d of %d: %w", r, len(rels), ErrInvalidAdjacency))
		}
	}

	out := &Relational{rels: make([]*Adjacency, len(rels)), undirected: make([]bool, len(rels))}
	for r, a := range rels {
		if a == nil {
			return nil, adjErrorf(methodNewRelational, fmt.Errorf("relation %d is nil: %w", r, ErrInvalidAdjacency))
		}
		if r == 0 {
			out.n = a.n
		} else if a.n != out.n {
			return nil, adjErrorf(methodNewRelational, fmt.Errorf("relation %d has %d nodes, want %d: %w", r, a.n, out.n, ErrInvalidAdjacency))
		}
		if o.undirected[r] || o.selfLoops {
			a = build(a.n, a.copyCells(), options{symmetrize: o.undirected[r], selfLoops: o.selfLoops})
		}
		out.rels[r] = a
		out.undirected[r] = o.undirected[r]
	}

	return out, nil
}

// RelationalFromRows builds every relation from literal rows with New, then stacks them.
// Errors from a slice name its relation index.
func RelationalFromRows(slices [][][]float64, opts ...RelationalOption) (*Relational, error) {
	rels := make([]*Adjacency, len(slices))
	for r, rows := range slices {
		a, err := New(rows)
		if err != nil {
			return nil, adjErrorf(methodNewRelational, fmt.Errorf("relation %d: %w", r, err))
		}
		rels[r] = a
	}

	return NewRelational(rels, opts...)
}

// RelationalFromTensor builds relations from the batches of an (R, N, N) tensor.
func RelationalFromTensor(t *matrix.Tensor3, opts ...RelationalOption) (*Relational, error) {
	if t == nil {
		return nil, adjErrorf(methodNewRelational, fmt.Errorf("nil tensor: %w", ErrInvalidAdjacency))
	}
	rels := make([]*Adjacency, t.Batches())
	for r := range rels {
		slice, err := t.Batch(r)
		if err != nil {
			return nil, adjErrorf(methodNewRelational, err)
		}
		if rels[r], err = FromDense(slice); err != nil {
			return nil, adjErrorf(methodNewRelational, fmt.Errorf("relation %d: %w", r, err))
		}
	}

	return NewRelational(rels, opts...)
}

// Nodes returns N.
func (g *Relational) Nodes() int { return g.n }

// Relations returns R.
func (g *Relational) Relations() int { return len(g.rels) }

// Relation returns the r-th slice.
func (g *Relational) Relation(r int) (*Adjacency, error) {
	if r < 0 || r >= len(g.rels) {
		return nil, adjErrorf(methodRelation, fmt.Errorf("r=%d of %d: %w", r, len(g.rels), ErrRelationOutOfRange))
	}

	return g.rels[r], nil
}

// Undirected reports whether relation r was declared undirected.
// Out-of-range r reports false.
func (g *Relational) Undirected(r int) bool {
	return r >= 0 && r < len(g.undirected) && g.undirected[r]
}

// NeighborsOfRelation returns the ascending sources with an edge into node
// under relation r.
func (g *Relational) NeighborsOfRelation(node, r int) ([]int, error) {
	a, err := g.Relation(r)
	if err != nil {
		return nil, err
	}

	return a.NeighborsOf(node)
}

// NeighborsOf returns the ascending union of sources over every relation.
// Complexity: O(R·N) worst case.
func (g *Relational) NeighborsOf(node int) ([]int, error) {
	if node < 0 || node >= g.n {
		return nil, adjErrorf(methodNeighborsOf, fmt.Errorf("node %d of %d: %w", node, g.n, ErrNodeOutOfRange))
	}
	seen := make([]bool, g.n)
	for _, a := range g.rels {
		for _, src := range a.in[node] {
			seen[src] = true
		}
	}
	var out []int
	for j, ok := range seen {
		if ok {
			out = append(out, j)
		}
	}

	return out, nil
}

// ToEdgeListRelation returns the edge list of relation r.
func (g *Relational) ToEdgeListRelation(r int) (EdgeList, error) {
	a, err := g.Relation(r)
	if err != nil {
		return EdgeList{}, err
	}

	return a.ToEdgeList(), nil
}

// Tensor returns the stack as an (R, N, N) tensor copy.
func (g *Relational) Tensor() *matrix.Tensor3 {
	ms := make([]matrix.Matrix, len(g.rels))
	for r, a := range g.rels {
		ms[r] = a.Dense()
	}
	t, _ := matrix.Stack(ms...) // shapes agree by construction

	return t
}
