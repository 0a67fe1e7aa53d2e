// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: EnergyNode record, Node Registry and Adjacency Table containers.
// Determinism:
//   - IDs(), Nodes(), Neighbors() return lexicographically sorted results.
//   - Ordered() preserves first-appearance order from the node table.
// Concurrency:
//   - Registry and Adjacency are builders: mutate from one goroutine, then hand
//     them to core.NewNetwork, which copies what it needs.

package energy

import (
	"fmt"
	"math"
	"sort"
)

// Attribute domains for EnergyNode.
const (
	MinPercent = 0.0
	MaxPercent = 100.0
)

// EnergyNode is a point of the network (generator, storage, consumer or
// substation) with its energy attributes.
type EnergyNode struct {
	// ID uniquely identifies the node within its registry.
	ID string `json:"id" yaml:"id"`

	// Production is the generated power in kW (≥ 0).
	Production float64 `json:"production" yaml:"production"`

	// Loss is the transmission loss percentage in [0,100].
	Loss float64 `json:"loss" yaml:"loss"`

	// Sustainability is a score in [0,100]; higher is more sustainable.
	Sustainability float64 `json:"sustainability" yaml:"sustainability"`
}

// String renders the node the way operators read it in logs.
func (n EnergyNode) String() string {
	return fmt.Sprintf("%s (prod: %gkW, loss: %g%%, sust: %g)", n.ID, n.Production, n.Loss, n.Sustainability)
}

// Validate checks the identifier and attribute domains. Every weight
// formula in package strategy is non-negative for nodes passing Validate.
// Returned errors wrap ErrMalformedInput.
func (n EnergyNode) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("%w: empty node id", ErrMalformedInput)
	}
	checks := []struct {
		field    string
		value    float64
		min, max float64
	}{
		{"production", n.Production, 0, math.MaxFloat64},
		{"loss", n.Loss, MinPercent, MaxPercent},
		{"sustainability", n.Sustainability, MinPercent, MaxPercent},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: node %q: %s is not finite", ErrMalformedInput, n.ID, c.field)
		}
		if c.value < c.min || c.value > c.max {
			return fmt.Errorf("%w: node %q: %s=%g out of range", ErrMalformedInput, n.ID, c.field, c.value)
		}
	}

	return nil
}

// Registry maps node identifiers to their attributes.
type Registry struct {
	nodes map[string]EnergyNode
	order []string // first-appearance order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]EnergyNode)}
}

// Put validates n and stores it, replacing any node with the same ID.
// replaced reports whether an earlier entry was overwritten; the original
// position in Ordered() is kept on overwrite.
//
// Complexity: O(1) amortized.
func (r *Registry) Put(n EnergyNode) (replaced bool, err error) {
	if err = n.Validate(); err != nil {
		return false, err
	}
	if _, replaced = r.nodes[n.ID]; !replaced {
		r.order = append(r.order, n.ID)
	}
	r.nodes[n.ID] = n

	return replaced, nil
}

// Get returns the node stored under id.
func (r *Registry) Get(id string) (EnergyNode, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.nodes[id]
	return ok
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int { return len(r.nodes) }

// IDs returns all identifiers sorted ascending.
//
// Complexity: O(V log V).
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Ordered returns identifiers in the order they first appeared.
func (r *Registry) Ordered() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Nodes returns all nodes sorted by ID.
func (r *Registry) Nodes() []EnergyNode {
	ids := r.IDs()
	out := make([]EnergyNode, len(ids))
	for i, id := range ids {
		out[i] = r.nodes[id]
	}

	return out
}

// Adjacency is an undirected neighbor table with set semantics: connecting
// the same pair twice leaves a single edge.
type Adjacency struct {
	neighbors map[string]map[string]struct{}
	edges     int
	stats     AdjacencyStats
}

// AdjacencyStats summarizes what the matrix loader kept and dropped.
type AdjacencyStats struct {
	Rows             int      // data rows read
	SkippedRows      int      // rows with < 2 cells or shorter than the header
	Edges            int      // distinct undirected edges created
	DroppedUnknown   int      // "1" cells whose row or column id is not registered
	DroppedSelfLoops int      // "1" cells on the diagonal
	UnknownIDs       []string // distinct unregistered ids seen, sorted
}

// NewAdjacency returns an empty adjacency table.
func NewAdjacency() *Adjacency {
	return &Adjacency{neighbors: make(map[string]map[string]struct{})}
}

// Connect adds the undirected edge u—v. It reports whether the edge is new.
// Self-loops are rejected with ErrSelfLoop; empty ids with ErrMalformedInput.
//
// Complexity: O(1) amortized.
func (a *Adjacency) Connect(u, v string) (bool, error) {
	if u == "" || v == "" {
		return false, fmt.Errorf("%w: empty node id in edge %q—%q", ErrMalformedInput, u, v)
	}
	if u == v {
		return false, fmt.Errorf("%w: %q", ErrSelfLoop, u)
	}
	if _, ok := a.neighbors[u][v]; ok {
		return false, nil
	}
	a.link(u, v)
	a.link(v, u)
	a.edges++

	return true, nil
}

func (a *Adjacency) link(from, to string) {
	set, ok := a.neighbors[from]
	if !ok {
		set = make(map[string]struct{})
		a.neighbors[from] = set
	}
	set[to] = struct{}{}
}

// Connected reports whether u and v share an edge.
func (a *Adjacency) Connected(u, v string) bool {
	_, ok := a.neighbors[u][v]
	return ok
}

// Neighbors returns the neighbors of id sorted ascending (nil if none).
//
// Complexity: O(d log d).
func (a *Adjacency) Neighbors(id string) []string {
	set := a.neighbors[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for nb := range set {
		out = append(out, nb)
	}
	sort.Strings(out)

	return out
}

// IDs returns every identifier with at least one neighbor, sorted.
func (a *Adjacency) IDs() []string {
	ids := make([]string, 0, len(a.neighbors))
	for id := range a.neighbors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// EdgeCount returns the number of distinct undirected edges.
func (a *Adjacency) EdgeCount() int { return a.edges }

// Stats returns the loader summary; zero for tables built by hand.
func (a *Adjacency) Stats() AdjacencyStats { return a.stats }
