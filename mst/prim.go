package mst

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/strategy"
)

// Prim grows the minimum spanning tree of root's island under s from root,
// always taking the cheapest link that reaches a new node. Components is 1.
// RequireConnected fails when root's island is not the whole network.
func Prim(net *core.Network, root string, s strategy.Strategy, opts ...Option) (*Backbone, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	o, err := resolveOptions(s, opts)
	if err != nil {
		return nil, err
	}
	if !net.HasNode(root) {
		return nil, fmt.Errorf("%w: %q", ErrRootNotFound, root)
	}

	inTree := map[string]bool{root: true}
	pq := &linkPQ{}
	push := func(u string) {
		a, _ := net.Node(u)
		net.ForEachNeighbor(u, func(v string) bool {
			if !inTree[v] {
				b, _ := net.Node(v)
				heap.Push(pq, primItem{Link: normalized(u, v, o.Params.Weight(a, b, s)), to: v})
			}
			return true
		})
	}
	push(root)

	bb := &Backbone{Links: make([]Link, 0), Strategy: s, Components: 1}
	for pq.Len() > 0 {
		it := heap.Pop(pq).(primItem)
		if inTree[it.to] {
			continue
		}
		inTree[it.to] = true
		bb.Links = append(bb.Links, it.Link)
		bb.Cost += it.Weight
		push(it.to)
	}

	if o.RequireConnected && len(inTree) < net.NodeCount() {
		return nil, fmt.Errorf("%w: %d of %d nodes reachable from %q",
			ErrDisconnected, len(inTree), net.NodeCount(), root)
	}

	return bb, nil
}

func normalized(u, v string, w float64) Link {
	if v < u {
		u, v = v, u
	}
	return Link{From: u, To: v, Weight: w}
}

// primItem is a candidate link and the node it would add.
type primItem struct {
	Link
	to string
}

// linkPQ is a min-heap of candidate links ordered by less.
type linkPQ []primItem

func (pq linkPQ) Len() int            { return len(pq) }
func (pq linkPQ) Less(i, j int) bool  { return less(pq[i].Link, pq[j].Link) }
func (pq linkPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *linkPQ) Push(x interface{}) { *pq = append(*pq, x.(primItem)) }
func (pq *linkPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]

	return it
}
