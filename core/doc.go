// Package core provides Network, the immutable undirected graph of an
// energy distribution network.
//
// A Network is composed once from an energy.Registry (node attributes) and an
// energy.Adjacency (connectivity) and never changes afterwards:
//
//   - every identifier referenced by the adjacency exists in the registry;
//   - adjacency is symmetric: v ∈ Neighbors(u) ⇔ u ∈ Neighbors(v);
//   - there are no self-loops;
//   - nodes without neighbors are kept (isolated nodes are still routable as
//     a start or end, they just reach nothing).
//
// Edge weights are not stored. They depend on the routing strategy and are
// computed on demand by package strategy from the two endpoint nodes.
//
// Determinism:
//
//	IDs(), Nodes(), Neighbors() and Edges() return lexicographically sorted
//	results, so every algorithm built on top of Network is reproducible.
//
// Concurrency:
//
//	No method mutates a Network after NewNetwork returns. Any number of
//	goroutines may read the same Network without locking; reloading data means
//	building a new Network and swapping the pointer.
//
// Errors:
//
//	ErrNilRegistry  - NewNetwork called without a registry.
//	ErrUnknownNode  - adjacency references an id the registry does not hold.
//	ErrNodeNotFound - query for an id that is not part of the network.
package core
