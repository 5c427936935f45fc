// SPDX-License-Identifier: MIT

package adjacency

// EdgeList is the vectorized (COO) view of a relation: edge k is Src[k] → Dst[k].
// Order is by destination ascending, then source ascending, so the incoming
// edges of every node form one contiguous run.
type EdgeList struct {
	Src []int
	Dst []int
}

// Len returns the number of edges.
func (e EdgeList) Len() int { return len(e.Src) }

// ToEdgeList returns parallel source/destination index slices for every
// nonzero entry. Complexity: O(E).
func (a *Adjacency) ToEdgeList() EdgeList {
	out := EdgeList{Src: make([]int, 0, a.edges), Dst: make([]int, 0, a.edges)}
	for dst, srcs := range a.in {
		for _, src := range srcs {
			out.Src = append(out.Src, src)
			out.Dst = append(out.Dst, dst)
		}
	}

	return out
}

// Offsets returns CSR-style run boundaries over ToEdgeList order: the incoming
// edges of node i occupy [off[i], off[i+1]). len(off) == N+1.
// Complexity: O(N).
func (a *Adjacency) Offsets() []int {
	off := make([]int, a.n+1)
	for i, srcs := range a.in {
		off[i+1] = off[i] + len(srcs)
	}

	return off
}
