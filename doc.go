// Package lvgnn is an in-memory toolkit for message-passing graph layers:
// node features in, updated node representations out, one explicit typed
// stage at a time.
//
// What is inside?
//
//	A pure-Go inference library that brings together:
//		• Numeric kernels: dense matrices, stable softmax, leaky rectify, batched products
//		• Graph structure: validated {0,1} adjacency, edge lists, typed relation stacks
//		• Layers: sum, degree-mean (GCN) and additive attention (GAT) aggregation
//		• Relational layers: one weight matrix per relation, summed (R-GCN)
//		• Multi-head attention: concatenation or averaging of K heads
//		• Networks: stacked layers with activations, declared in YAML
//
// Why lvgnn?
//
//   - Deterministic: explicit seeds, fixed loop orders, parallel = sequential
//   - Safe: sentinel errors with node/relation/head context, no partial outputs
//   - Observable: klog verbosity levels for shapes and attention weights
//
// Packages, leaf to root:
//
//	matrix/    - Dense, Tensor3, Mul, BatchedMatMul, StableSoftmax, activations
//	adjacency/ - Adjacency, Relational, EdgeList, symmetrize / self-loop options
//	builder/   - Cycle, Path, Star, Complete, RandomSparse fixture graphs
//	gnn/       - Project, Aggregate*, Layer, MultiHead, Network, NetworkConfig
//
// Quick ASCII example (orientation: A[i][j] == 1 means j sends into i):
//
//	    0───1
//	    │   │
//	    3───2      out[0] = mean(h3, h1) under PolicyMean
//
//	go get github.com/katalvlaran/lvgnn
package lvgnn
