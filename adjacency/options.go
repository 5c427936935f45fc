// SPDX-License-Identifier: MIT

// Package adjacency: functional construction options.
//
// Design goals:
//   - Nothing implicit: the zero option set keeps the input exactly as given.
//   - Fixed application order regardless of argument order:
//     symmetrize first, then self-loops, so a symmetrized graph with loops
//     is identical however the options are listed.
//   - Options are idempotent; applying one twice is the same as once.

package adjacency

// Defaults (single source of truth for zero-value behavior).
const (
	// DefaultSymmetrize keeps the matrix as given (directed semantics).
	DefaultSymmetrize = false

	// DefaultSelfLoops leaves the diagonal as given.
	DefaultSelfLoops = false
)

// Option customizes Adjacency construction.
type Option func(*options)

type options struct {
	symmetrize bool
	selfLoops  bool
}

// WithSymmetrize requests undirected construction: A' = clip(A + Aᵀ, max=1).
func WithSymmetrize() Option {
	return func(o *options) { o.symmetrize = true }
}

// WithSelfLoops sets every diagonal entry to 1 after (optional) symmetrization,
// guaranteeing every node at least one incoming edge.
func WithSelfLoops() Option {
	return func(o *options) { o.selfLoops = true }
}

func gatherOptions(opts ...Option) options {
	o := options{symmetrize: DefaultSymmetrize, selfLoops: DefaultSelfLoops}
	for _, fn := range opts {
		if fn == nil {
			panic("adjacency: nil Option")
		}
		fn(&o)
	}

	return o
}

// RelationalOption customizes Relational construction.
type RelationalOption func(*relationalOptions)

type relationalOptions struct {
	undirected map[int]bool
	selfLoops  bool
}

// WithUndirectedRelation marks relation r as undirected: its slice is
// symmetrized at construction. Other relations keep their direction.
// Panics on negative r (programmer error).
func WithUndirectedRelation(r int) RelationalOption {
	if r < 0 {
		panic("adjacency: WithUndirectedRelation: negative relation index")
	}
	return func(o *relationalOptions) { o.undirected[r] = true }
}

// WithRelationSelfLoops adds self-loops to every relation slice.
func WithRelationSelfLoops() RelationalOption {
	return func(o *relationalOptions) { o.selfLoops = true }
}

func gatherRelationalOptions(opts ...RelationalOption) relationalOptions {
	o := relationalOptions{undirected: make(map[int]bool)}
	for _, fn := range opts {
		if fn == nil {
			panic("adjacency: nil RelationalOption")
		}
		fn(&o)
	}

	return o
}
