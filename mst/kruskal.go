// Package mst computes the backbone of an energy network: the minimum
// spanning forest of its links under a routing strategy. The backbone is
// the cheapest set of links that keeps every island in one piece.
//
// Complexity:
//
//   - Kruskal: Time O(E log E + α(V)·E), Memory O(V+E)
//   - Prim:    Time O(E log E), Memory O(V+E)
//
// Errors:
//
//   - ErrNilNetwork       network pointer is nil
//   - ErrRootNotFound     Prim root is not in the network
//   - ErrDisconnected     more than one island under WithRequireConnected
//   - ErrOptionViolation  invalid Params
//   - strategy.ErrInvalidStrategy
package mst

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/strategy"
)

// Kruskal builds the minimum spanning forest of net under s with a
// union-find over links sorted by (weight, From, To). Components counts the
// trees of the forest, isolated nodes included.
func Kruskal(net *core.Network, s strategy.Strategy, opts ...Option) (*Backbone, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	o, err := resolveOptions(s, opts)
	if err != nil {
		return nil, err
	}

	links := weighted(net, s, o.Params)
	sort.Slice(links, func(i, j int) bool { return less(links[i], links[j]) })

	ids := net.IDs()
	parent := make(map[string]string, len(ids))
	rank := make(map[string]int, len(ids))
	for _, id := range ids {
		parent[id] = id
	}
	find := func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}

	bb := &Backbone{Links: make([]Link, 0, max(len(ids)-1, 0)), Strategy: s, Components: len(ids)}
	for _, l := range links {
		ru, rv := find(l.From), find(l.To)
		if ru == rv {
			continue
		}
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
		bb.Links = append(bb.Links, l)
		bb.Cost += l.Weight
		bb.Components--
		if bb.Components == 1 {
			break
		}
	}

	if o.RequireConnected && bb.Components > 1 {
		return nil, fmt.Errorf("%w: %d islands", ErrDisconnected, bb.Components)
	}

	return bb, nil
}

// weighted lists every link of net with its cost under s.
func weighted(net *core.Network, s strategy.Strategy, p strategy.Params) []Link {
	edges := net.Edges()
	out := make([]Link, len(edges))
	for i, e := range edges {
		a, _ := net.Node(e.From)
		b, _ := net.Node(e.To)
		out[i] = Link{From: e.From, To: e.To, Weight: p.Weight(a, b, s)}
	}

	return out
}
