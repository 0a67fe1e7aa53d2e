// Package bfs provides breadth-first reachability over a core.Network:
// visit order, hop depth and parent links from a start node, plus the
// decomposition of a network into islands (connected components).
//
// Neighbors are expanded in sorted order, so results are deterministic.
package bfs

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/greenroute/core"
)

type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable traversal state.
type walker struct {
	net     *core.Network
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// Reachable runs a breadth-first traversal of net from start.
//
// Errors: ErrNetworkNil, ErrOptionViolation, ErrStartNotFound, the context
// error on cancellation, or a wrapped OnVisit error. On error the partial
// result is returned alongside it.
//
// Complexity: O(V + E).
func Reachable(net *core.Network, start string, opts ...Option) (*Result, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !net.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}

	n := net.NodeCount()
	w := &walker{
		net:     net,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &Result{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
	w.enqueue(start, 0, "")

	return w.res, w.loop()
}

func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		w.net.ForEachNeighbor(item.id, func(nb string) bool {
			if !w.visited[nb] && w.opts.FilterNeighbor(item.id, nb) {
				w.enqueue(nb, next, item.id)
			}
			return true
		})
	}

	return nil
}

// Islands splits net into connected components. Each island is sorted and
// islands are ordered by their smallest id; an isolated node is an island
// of one. A nil network has no islands.
//
// Complexity: O(V + E).
func Islands(net *core.Network) [][]string {
	if net == nil {
		return nil
	}
	seen := make(map[string]bool, net.NodeCount())
	var out [][]string
	for _, id := range net.IDs() { // ascending, so islands come out ordered
		if seen[id] {
			continue
		}
		res, err := Reachable(net, id)
		if err != nil {
			continue // id comes from net, so start is always found
		}
		island := res.Order
		for _, v := range island {
			seen[v] = true
		}
		sort.Strings(island)
		out = append(out, island)
	}

	return out
}

// Connected reports whether every node of net lies on a single island.
// Empty networks count as connected.
func Connected(net *core.Network) bool {
	return len(Islands(net)) <= 1
}
