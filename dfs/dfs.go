// Package dfs implements depth-first search over a core.Network and uses it
// to find the network's single points of failure: cut nodes (articulation
// points) and bridges.
//
// Neighbors are expanded in sorted order and forest traversal starts roots
// in sorted order, so every result is deterministic.
//
// Complexity:
//
//   - DFS:      Time O(V+E), Memory O(V)
//   - Critical: Time O(V+E), Memory O(V), iterative (no recursion depth limit)
//
// Errors:
//
//   - ErrNetworkNil       network pointer is nil
//   - ErrStartNotFound    start node is not in the network
//   - ErrOptionViolation  an Option was given an invalid value
//   - context errors      search cancelled via WithContext
//   - hook errors         returned by OnVisit or OnExit
package dfs

import (
	"fmt"

	"github.com/katalvlaran/greenroute/core"
)

// walker encapsulates mutable traversal state.
type walker struct {
	net   *core.Network
	opts  Options
	res   *Result
	state map[string]int
}

// DFS runs a depth-first search from start (or over every island with
// WithFullTraversal, in which case start is ignored).
// On a hook or context error the partial result is returned with it.
func DFS(net *core.Network, start string, opts ...Option) (*Result, error) {
	o, err := resolve(net, opts)
	if err != nil {
		return nil, err
	}
	if !o.FullTraversal && !net.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}

	n := net.NodeCount()
	w := &walker{
		net:  net,
		opts: o,
		res: &Result{
			Order:   make([]string, 0, n),
			Depth:   make(map[string]int, n),
			Parent:  make(map[string]string, n),
			Visited: make(map[string]bool, n),
		},
		state: make(map[string]int, n),
	}

	if !o.FullTraversal {
		return w.res, w.traverse(start, 0)
	}
	for _, id := range net.IDs() {
		if w.state[id] == White {
			if err = w.traverse(id, 0); err != nil {
				return w.res, err
			}
		}
	}

	return w.res, nil
}

// traverse visits id at depth and recurses into undiscovered neighbors.
func (w *walker) traverse(id string, depth int) error {
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}

	w.state[id] = Gray
	w.res.Visited[id] = true
	w.res.Depth[id] = depth
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return fmt.Errorf("dfs: OnVisit %q: %w", id, err)
		}
	}

	if w.opts.MaxDepth < 0 || depth < w.opts.MaxDepth {
		for _, nb := range w.net.Neighbors(id) {
			if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(id, nb) {
				w.res.SkippedNeighbors++
				continue
			}
			if w.state[nb] != White {
				continue
			}
			w.res.Parent[nb] = id
			if err := w.traverse(nb, depth+1); err != nil {
				return err
			}
		}
	}

	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id); err != nil {
			return fmt.Errorf("dfs: OnExit %q: %w", id, err)
		}
	}
	w.state[id] = Black
	w.res.Order = append(w.res.Order, id)

	return nil
}
