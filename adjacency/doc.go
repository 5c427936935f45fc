// SPDX-License-Identifier: MIT

// Package adjacency represents graph topology for message passing: a single
// untyped relation (Adjacency, an N×N {0,1} matrix) or a stack of R typed
// relations sharing the same node set (Relational).
//
// Orientation convention:
//
//	A[i][j] == 1  ⇔  edge j → i  (row i lists the sources sending messages into i)
//
// With this convention the uniform aggregation is the plain product A · H,
// the in-degree of i is the sum of row i, and NeighborsOf(i) reads row i.
// FromEdges accepts DGL-style (src, dst) pairs and performs the transposition.
//
// Every value in this package is immutable after construction. Symmetrize,
// AddSelfLoops and the relational options return new values; self-loops and
// symmetrization are never implicit.
//
// Quick example (undirected triangle with self-loops):
//
//	0───1
//	 \ /
//	  2
//
//	a, _ := adjacency.New([][]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}, adjacency.WithSelfLoops())
//	nbrs, _ := a.NeighborsOf(0) // [0 1 2]
package adjacency
