// SPDX-License-Identifier: MIT

// Package gnn implements single graph layers as explicit typed stages:
//
//	features ──Project──▶ H ──Aggregate(policy)──▶ updated features
//
// Policies:
//   - PolicySum:       out = A · H
//   - PolicyMean:      out[i] = (A · H)[i] / deg[i]; deg[i] == 0 fails with ErrZeroDegree
//   - PolicyAttention: GAT-style additive attention, softmax over each node's
//     incoming edges; nodes without incoming edges produce zero rows
//
// Layers with WithRelations(R > 1) project features once per relation with a
// batched product and sum the per-relation aggregations (R-GCN style).
// MultiHead runs K attention layers on the same input and merges them by
// concatenation (intermediate layers) or averaging (output layers).
// Network stacks Forwarders with activations in between; NetworkConfig builds
// one from YAML.
//
// Forward passes are pure: inputs are never mutated, outputs are freshly
// allocated, and a failing pass returns no partial output. Diagnostics are
// emitted through klog verbosity levels (-v=1 per-forward summaries, -v=2
// stage shapes, -v=3 attention weights), never through return values.
package gnn
