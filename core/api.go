// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only getters on Network.
// Policy:
//   - Slices returned to callers are copies; the Network stays immutable.
//   - No locking: a Network never changes after NewNetwork.

package core

import (
	"fmt"

	"github.com/katalvlaran/greenroute/energy"
)

// Node returns the attributes stored under id.
func (n *Network) Node(id string) (energy.EnergyNode, bool) {
	node, ok := n.nodes[id]
	return node, ok
}

// HasNode reports whether id is part of the network.
func (n *Network) HasNode(id string) bool {
	_, ok := n.nodes[id]
	return ok
}

// IDs returns every node id sorted ascending.
//
// Complexity: O(V).
func (n *Network) IDs() []string {
	return append([]string(nil), n.ids...)
}

// Ordered returns node ids in node-table order. The CLI uses the first and
// last entries as default route endpoints.
func (n *Network) Ordered() []string {
	return append([]string(nil), n.order...)
}

// Nodes returns every node sorted by id.
//
// Complexity: O(V).
func (n *Network) Nodes() []energy.EnergyNode {
	out := make([]energy.EnergyNode, len(n.ids))
	for i, id := range n.ids {
		out[i] = n.nodes[id]
	}

	return out
}

// Neighbors returns the sorted neighbor ids of id; nil for an isolated or
// unknown node.
//
// Complexity: O(d).
func (n *Network) Neighbors(id string) []string {
	nbs := n.neighbors[id]
	if len(nbs) == 0 {
		return nil
	}

	return append([]string(nil), nbs...)
}

// ForEachNeighbor calls fn for each neighbor of id in sorted order, without
// allocating. Iteration stops early when fn returns false.
func (n *Network) ForEachNeighbor(id string, fn func(nb string) bool) {
	for _, nb := range n.neighbors[id] {
		if !fn(nb) {
			return
		}
	}
}

// Connected reports whether u and v share an edge.
//
// Complexity: O(log d).
func (n *Network) Connected(u, v string) bool {
	nbs := n.neighbors[u]
	lo, hi := 0, len(nbs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case nbs[mid] == v:
			return true
		case nbs[mid] < v:
			lo = mid + 1
		default:
			hi = mid
		}
	}

	return false
}

// Degree returns the number of neighbors of id.
//
// Errors: ErrNodeNotFound if id is not in the network.
func (n *Network) Degree(id string) (int, error) {
	if !n.HasNode(id) {
		return 0, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return len(n.neighbors[id]), nil
}

// Edges returns every undirected edge once, sorted by (From, To).
//
// Complexity: O(E).
func (n *Network) Edges() []Edge {
	return append([]Edge(nil), n.edges...)
}

// NodeCount returns |V|.
func (n *Network) NodeCount() int { return len(n.ids) }

// EdgeCount returns |E|.
func (n *Network) EdgeCount() int { return len(n.edges) }

// Stats returns the summary computed at construction.
func (n *Network) Stats() Stats { return n.stats }

// Registry rebuilds an energy.Registry holding this network's nodes in
// node-table order.
func (n *Network) Registry() *energy.Registry {
	reg := energy.NewRegistry()
	for _, id := range n.order {
		_, _ = reg.Put(n.nodes[id]) // nodes were validated on the way in
	}

	return reg
}

// Adjacency rebuilds an energy.Adjacency holding this network's edges.
func (n *Network) Adjacency() *energy.Adjacency {
	adj := energy.NewAdjacency()
	for _, e := range n.edges {
		_, _ = adj.Connect(e.From, e.To)
	}

	return adj
}
