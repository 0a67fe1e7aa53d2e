// Package flow measures how redundant the connection between two nodes of
// an energy network is: the number of routes that share no link (or no
// node), one such set of routes, and the smallest set of links or nodes
// whose failure cuts the two apart.
//
// Every link carries one unit of capacity in each direction and the answer
// is the maximum flow from source to sink, found with Edmonds–Karp
// (shortest augmenting paths by BFS). For node-disjoint routes each
// intermediate node is split into an in/out pair joined by a unit arc.
//
// Complexity: Time O(k·(V+E)) for k routes, Memory O(V+E).
//
// Errors:
//
//   - ErrNilNetwork       network pointer is nil
//   - ErrSourceNotFound   source is not in the network
//   - ErrSinkNotFound     sink is not in the network
//   - ErrSameEndpoints    source == sink
//   - ErrOptionViolation  invalid Option
//   - context errors      search cancelled via WithContext
package flow

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/greenroute/core"
)

// vertex is a node of the residual network. out is only set in NodeDisjoint
// mode, where it marks the outgoing half of a split node.
type vertex struct {
	id  string
	out bool
}

type arc struct{ from, to vertex }

type residual struct {
	cap    map[arc]int
	adj    map[vertex][]vertex
	linked map[arc]bool
}

func (r *residual) addArc(a, b vertex, c int) {
	r.cap[arc{a, b}] += c
	r.link(a, b)
	r.link(b, a)
}

func (r *residual) link(a, b vertex) {
	if !r.linked[arc{a, b}] {
		r.linked[arc{a, b}] = true
		r.adj[a] = append(r.adj[a], b)
	}
}

// Redundancy counts the independent routes between source and sink.
//
// In NodeDisjoint mode a direct source—sink link is a route that no node
// failure can break, so CutNodes then has Count-1 entries.
func Redundancy(net *core.Network, source, sink string, opts ...Option) (*Result, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	o := Options{Ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !net.HasNode(source) {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}
	if !net.HasNode(sink) {
		return nil, fmt.Errorf("%w: %q", ErrSinkNotFound, sink)
	}
	if source == sink {
		return nil, fmt.Errorf("%w: %q", ErrSameEndpoints, source)
	}

	r := build(net, source, sink, o.Mode)
	src := vertex{id: source, out: o.Mode == NodeDisjoint}
	dst := vertex{id: sink}
	flows := make(map[[2]string]int)
	res := &Result{Source: source, Sink: sink, Mode: o.Mode, Routes: make([][]string, 0)}

	var reached map[vertex]bool
	for o.MaxRoutes == 0 || res.Count < o.MaxRoutes {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		var path []vertex
		path, reached = r.augmenting(src, dst)
		if path == nil {
			break
		}
		bottle := r.cap[arc{path[0], path[1]}]
		for i := 1; i < len(path)-1; i++ {
			bottle = min(bottle, r.cap[arc{path[i], path[i+1]}])
		}
		for i := 0; i < len(path)-1; i++ {
			a, b := path[i], path[i+1]
			r.cap[arc{a, b}] -= bottle
			r.cap[arc{b, a}] += bottle
			if a.id != b.id {
				flows[[2]string{a.id, b.id}] += bottle
				flows[[2]string{b.id, a.id}] -= bottle
			}
		}
		res.Count += bottle
	}

	res.Routes = decompose(flows, source, sink, res.Count)
	if reached != nil {
		cut(net, o.Mode, reached, res)
	}

	return res, nil
}

// build lays out the residual network with unit capacities.
func build(net *core.Network, source, sink string, mode Mode) *residual {
	r := &residual{cap: make(map[arc]int), adj: make(map[vertex][]vertex), linked: make(map[arc]bool)}
	if mode == LinkDisjoint {
		for _, e := range net.Edges() {
			u, v := vertex{id: e.From}, vertex{id: e.To}
			r.addArc(u, v, 1)
			r.addArc(v, u, 1)
		}
		return r
	}

	for _, id := range net.IDs() {
		c := 1
		if id == source || id == sink {
			c = net.NodeCount()
		}
		r.addArc(vertex{id: id}, vertex{id: id, out: true}, c)
	}
	for _, e := range net.Edges() {
		r.addArc(vertex{id: e.From, out: true}, vertex{id: e.To}, 1)
		r.addArc(vertex{id: e.To, out: true}, vertex{id: e.From}, 1)
	}

	return r
}

// augmenting returns the shortest src→dst path with spare capacity, or nil
// and the set of vertices reachable from src when there is none.
func (r *residual) augmenting(src, dst vertex) ([]vertex, map[vertex]bool) {
	parent := make(map[vertex]vertex)
	visited := map[vertex]bool{src: true}
	queue := []vertex{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range r.adj[u] {
			if visited[v] || r.cap[arc{u, v}] <= 0 {
				continue
			}
			visited[v] = true
			parent[v] = u
			if v == dst {
				path := []vertex{dst}
				for cur := dst; cur != src; {
					cur = parent[cur]
					path = append(path, cur)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, nil
			}
			queue = append(queue, v)
		}
	}

	return nil, visited
}

// decompose splits the net flow into count source→sink routes, dropping any
// cycles met on the way.
func decompose(flows map[[2]string]int, source, sink string, count int) [][]string {
	pairs := make([][2]string, 0, len(flows))
	for p, f := range flows {
		if f > 0 {
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	next := make(map[string][]string)
	for _, p := range pairs {
		for k := 0; k < flows[p]; k++ {
			next[p[0]] = append(next[p[0]], p[1])
		}
	}

	routes := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		path := []string{source}
		pos := map[string]int{source: 0}
		for cur := source; cur != sink; {
			if len(next[cur]) == 0 {
				path = nil
				break
			}
			nxt := next[cur][0]
			next[cur] = next[cur][1:]
			if at, ok := pos[nxt]; ok {
				for _, id := range path[at+1:] {
					delete(pos, id)
				}
				path = path[:at+1]
			} else {
				pos[nxt] = len(path)
				path = append(path, nxt)
			}
			cur = nxt
		}
		if path != nil {
			routes = append(routes, path)
		}
	}
	sort.SliceStable(routes, func(i, j int) bool { return len(routes[i]) < len(routes[j]) })

	return routes
}

// cut fills the minimum cut from the final residual reachability.
func cut(net *core.Network, mode Mode, reached map[vertex]bool, res *Result) {
	if mode == LinkDisjoint {
		res.CutLinks = make([]core.Edge, 0, res.Count)
		for _, e := range net.Edges() {
			if reached[vertex{id: e.From}] != reached[vertex{id: e.To}] {
				res.CutLinks = append(res.CutLinks, e)
			}
		}
		return
	}

	// A saturated link arc out(u)→in(v) stands for node v, or for u when v
	// is the sink. A direct source—sink link has no node to stand for.
	nodes := make(map[string]bool)
	for _, id := range net.IDs() {
		if reached[vertex{id: id}] && !reached[vertex{id: id, out: true}] {
			nodes[id] = true
		}
	}
	for _, e := range net.Edges() {
		for _, p := range [2][2]string{{e.From, e.To}, {e.To, e.From}} {
			u, v := p[0], p[1]
			if !reached[vertex{id: u, out: true}] || reached[vertex{id: v}] {
				continue
			}
			switch {
			case v != res.Sink:
				nodes[v] = true
			case u != res.Source:
				nodes[u] = true
			}
		}
	}
	res.CutNodes = make([]string, 0, len(nodes))
	for id := range nodes {
		res.CutNodes = append(res.CutNodes, id)
	}
	sort.Strings(res.CutNodes)
}
