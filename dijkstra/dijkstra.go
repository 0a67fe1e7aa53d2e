// Package dijkstra finds minimum-cost routes through a core.Network under a
// routing strategy.
//
// Edge weights are computed on demand from the two endpoint nodes by
// strategy.Params.Weight; they are never stored on the network.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Each node is settled at most once: V extractions from the heap.
//   - Each successful relaxation pushes one entry: up to E pushes.
//   - Space: O(V + E)
//   - O(V) for the cost and predecessor maps.
//   - O(E) worst-case heap entries under “lazy decrease-key”.
//
// Notes on implementation choices:
//
//   - Heap entries are ordered by (cost, id), so equal-cost frontier nodes
//     are settled in lexicographic order.
//   - Relaxation uses a strict “<”: on equal candidate costs the first
//     predecessor found is kept. Together with sorted neighbor iteration this
//     makes every result reproducible.
//   - A point-to-point query stops as soon as the end node is settled.
//   - Stale heap entries are skipped when popped (lazy decrease-key).
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/strategy"
)

// FindRoute returns the minimum-cost route from start to end under s.
//
// Preconditions and validation (in order):
//  1. net must be non-nil (ErrNilNetwork).
//  2. s must be a declared strategy (strategy.ErrInvalidStrategy).
//  3. Options must be valid (ErrOptionViolation).
//  4. start and end must be nodes of net (ErrUnknownEndpoint).
//
// Results:
//
//   - start == end: Path [start], Cost 0, no hops.
//   - end unreachable, or reachable only above MaxCost: ErrNoRoute.
//   - ctx cancelled mid-search: the context error, wrapped.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func FindRoute(net *core.Network, start, end string, s strategy.Strategy, opts ...Option) (*Route, error) {
	r, err := newRunner(net, start, s, opts)
	if err != nil {
		return nil, err
	}
	if !net.HasNode(end) {
		return nil, fmt.Errorf("%w: end %q", ErrUnknownEndpoint, end)
	}

	if start == end {
		return &Route{Path: []string{start}, Cost: 0, Strategy: s, Hops: []Hop{}}, nil
	}

	r.target = end
	if err = r.process(); err != nil {
		return nil, err
	}
	if !r.settled[end] {
		return nil, fmt.Errorf("%w: %q → %q", ErrNoRoute, start, end)
	}

	return r.route(end), nil
}

// AllCosts returns the minimum cost from start to every node reachable from
// it under s (start itself maps to 0). Unreachable nodes are absent.
//
// Errors: same validation as FindRoute, minus the end checks.
func AllCosts(net *core.Network, start string, s strategy.Strategy, opts ...Option) (map[string]float64, error) {
	r, err := newRunner(net, start, s, opts)
	if err != nil {
		return nil, err
	}
	if err = r.process(); err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(r.settled))
	for id := range r.settled {
		out[id] = r.dist[id]
	}

	return out, nil
}

// PathCost sums the weights along path under s, independently of any search.
// A single-node path costs 0.
//
// Errors:
//   - ErrNilNetwork, strategy.ErrInvalidStrategy, ErrOptionViolation as FindRoute.
//   - ErrInvalidPath for an empty path, an unknown id, or consecutive ids
//     that are not connected.
func PathCost(net *core.Network, path []string, s strategy.Strategy, opts ...Option) (float64, error) {
	if net == nil {
		return 0, ErrNilNetwork
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	o, err := resolveOptions(opts)
	if err != nil {
		return 0, err
	}
	if len(path) == 0 {
		return 0, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if !net.HasNode(path[0]) {
		return 0, fmt.Errorf("%w: unknown node %q", ErrInvalidPath, path[0])
	}

	var total float64
	for i := 1; i < len(path); i++ {
		u, v := path[i-1], path[i]
		if !net.Connected(u, v) {
			return 0, fmt.Errorf("%w: %q and %q are not connected", ErrInvalidPath, u, v)
		}
		nu, _ := net.Node(u)
		nv, _ := net.Node(v)
		total += o.Params.Weight(nu, nv, s)
	}

	return total, nil
}

// runner holds the mutable state of a single search.
type runner struct {
	net     *core.Network
	s       strategy.Strategy
	options Options
	source  string
	target  string // "" for a single-source run

	dist    map[string]float64 // best known cost; absent means +∞
	prev    map[string]string  // predecessor on the best known path
	settled map[string]bool    // cost is final
	pq      nodePQ
}

func newRunner(net *core.Network, start string, s strategy.Strategy, opts []Option) (*runner, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if !net.HasNode(start) {
		return nil, fmt.Errorf("%w: start %q", ErrUnknownEndpoint, start)
	}

	V := net.NodeCount()
	r := &runner{
		net:     net,
		s:       s,
		options: o,
		source:  start,
		dist:    make(map[string]float64, V),
		prev:    make(map[string]string, V),
		settled: make(map[string]bool, V),
		pq:      make(nodePQ, 0, V),
	}
	r.dist[start] = 0
	heap.Push(&r.pq, &nodeItem{id: start, cost: 0})

	return r, nil
}

// process settles nodes in (cost, id) order until the heap drains, the
// target is settled, or the context is done.
func (r *runner) process() error {
	ctx := r.options.Ctx
	for r.pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dijkstra: search aborted: %w", err)
		}

		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.settled[u] || item.cost > r.dist[u] {
			continue // stale entry
		}
		r.settled[u] = true
		if u == r.target {
			return nil
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve the cost of every unsettled neighbor of u.
func (r *runner) relax(u string) error {
	nu, _ := r.net.Node(u)
	base := r.dist[u]

	var err error
	r.net.ForEachNeighbor(u, func(v string) bool {
		if r.settled[v] {
			return true
		}
		nv, _ := r.net.Node(v)
		w := r.options.Params.Weight(nu, nv, r.s)
		if w < 0 || math.IsNaN(w) {
			err = fmt.Errorf("%w: edge %s—%s weight=%g", ErrNegativeWeight, u, v, w)
			return false
		}

		cand := base + w
		if cand > r.options.MaxCost {
			return true
		}
		if best, seen := r.dist[v]; seen && cand >= best {
			return true
		}
		r.dist[v] = cand
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, cost: cand})

		return true
	})

	return err
}

// route walks the predecessor chain back from end.
func (r *runner) route(end string) *Route {
	var rev []string
	for at := end; ; at = r.prev[at] {
		rev = append(rev, at)
		if at == r.source {
			break
		}
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}

	hops := make([]Hop, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		nu, _ := r.net.Node(path[i-1])
		nv, _ := r.net.Node(path[i])
		hops = append(hops, Hop{From: path[i-1], To: path[i], Weight: r.options.Params.Weight(nu, nv, r.s)})
	}

	return &Route{Path: path, Cost: r.dist[end], Strategy: r.s, Hops: hops}
}

// nodeItem is a frontier entry.
type nodeItem struct {
	id   string
	cost float64
}

// nodePQ is a min-heap of *nodeItem ordered by (cost, id).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

// Less breaks cost ties by identifier so settle order is deterministic.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
