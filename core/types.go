// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Network, Edge and Stats declarations plus the NewNetwork constructor.
// Policy:
//   - Inputs are copied; the caller may keep mutating its registry/adjacency.
//   - Validation happens here, once. Getters in api.go never fail on shape.

package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/greenroute/energy"
)

// Sentinel errors for network construction and queries.
var (
	// ErrNilRegistry indicates NewNetwork was called with a nil registry.
	ErrNilRegistry = errors.New("core: nil registry")

	// ErrUnknownNode indicates an adjacency entry whose endpoint is missing
	// from the registry.
	ErrUnknownNode = errors.New("core: adjacency references unknown node")

	// ErrNodeNotFound indicates a query for an id outside the network.
	ErrNodeNotFound = errors.New("core: node not found")
)

// Edge is an undirected connection. From < To lexicographically, so each
// physical link has exactly one Edge value.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// String renders the edge as "From—To".
func (e Edge) String() string { return e.From + "—" + e.To }

// Stats is an O(1) summary computed at construction time.
type Stats struct {
	Nodes     int `json:"nodes"`
	Edges     int `json:"edges"`
	Isolated  int `json:"isolated"`  // nodes with degree 0
	MaxDegree int `json:"maxDegree"` // 0 for an edgeless network
}

// Network is an immutable undirected graph of EnergyNodes.
type Network struct {
	nodes     map[string]energy.EnergyNode
	ids       []string            // sorted
	order     []string            // first appearance in the node table
	neighbors map[string][]string // id → sorted neighbor ids; absent for isolated nodes
	edges     []Edge              // sorted by (From, To)
	stats     Stats
}

// NewNetwork composes reg and adj into a Network.
//
// Implementation:
//   - Stage 1: Copy every node of reg.
//   - Stage 2: Walk adj in sorted order, verify both endpoints exist, and copy
//     sorted neighbor lists.
//   - Stage 3: Derive the sorted edge list and Stats.
//
// A nil adj yields an edgeless network.
//
// Errors:
//   - ErrNilRegistry if reg is nil.
//   - ErrUnknownNode (wrapped with the offending ids) if adj mentions an id
//     absent from reg.
//
// Complexity:
//   - Time O(V log V + E log d), Space O(V + E).
func NewNetwork(reg *energy.Registry, adj *energy.Adjacency) (*Network, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	n := &Network{
		nodes:     make(map[string]energy.EnergyNode, reg.Len()),
		ids:       reg.IDs(),
		order:     reg.Ordered(),
		neighbors: make(map[string][]string),
	}
	for _, id := range n.ids {
		node, _ := reg.Get(id)
		n.nodes[id] = node
	}

	if adj != nil {
		for _, u := range adj.IDs() {
			if _, ok := n.nodes[u]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownNode, u)
			}
			nbs := adj.Neighbors(u)
			for _, v := range nbs {
				if _, ok := n.nodes[v]; !ok {
					return nil, fmt.Errorf("%w: %q (neighbor of %q)", ErrUnknownNode, v, u)
				}
				if u < v {
					n.edges = append(n.edges, Edge{From: u, To: v})
				}
			}
			n.neighbors[u] = nbs
		}
	}
	sort.Slice(n.edges, func(i, j int) bool {
		if n.edges[i].From != n.edges[j].From {
			return n.edges[i].From < n.edges[j].From
		}
		return n.edges[i].To < n.edges[j].To
	})

	n.stats = Stats{Nodes: len(n.ids), Edges: len(n.edges)}
	for _, id := range n.ids {
		d := len(n.neighbors[id])
		if d == 0 {
			n.stats.Isolated++
		}
		if d > n.stats.MaxDegree {
			n.stats.MaxDegree = d
		}
	}

	return n, nil
}
