package dfs

import (
	"sort"

	"github.com/katalvlaran/greenroute/core"
)

// frame is one level of the explicit search stack.
type frame struct {
	id     string
	parent string // "" for a root
	nbrs   []string
	next   int
}

// Critical finds every cut node and bridge of net with Tarjan's low-link
// method. Only WithContext is honored among the options.
//
// A node is a cut node when removing it leaves its island in more than one
// piece; a link is a bridge when removing it does the same. Isolated nodes
// and two-node islands have no cut nodes; a two-node island's link is a
// bridge.
func Critical(net *core.Network, opts ...Option) (*Report, error) {
	o, err := resolve(net, opts)
	if err != nil {
		return nil, err
	}

	n := net.NodeCount()
	disc := make(map[string]int, n) // discovery time, 0 = White
	low := make(map[string]int, n)
	cut := make(map[string]bool)
	bridges := make([]core.Edge, 0)
	timer := 0

	for _, root := range net.IDs() {
		if disc[root] != 0 {
			continue
		}
		if err = o.Ctx.Err(); err != nil {
			return nil, err
		}

		timer++
		disc[root], low[root] = timer, timer
		rootChildren := 0
		stack := []*frame{{id: root, nbrs: net.Neighbors(root)}}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.next < len(f.nbrs) {
				v := f.nbrs[f.next]
				f.next++
				if v == f.parent {
					continue // no parallel links, so the tree edge is skipped once
				}
				if disc[v] != 0 {
					low[f.id] = min(low[f.id], disc[v])
					continue
				}
				timer++
				disc[v], low[v] = timer, timer
				if f.id == root {
					rootChildren++
				}
				stack = append(stack, &frame{id: v, parent: f.id, nbrs: net.Neighbors(v)})
				continue
			}

			// f is finished: fold its low-link into the parent.
			stack = stack[:len(stack)-1]
			if f.parent == "" {
				continue
			}
			p := f.parent
			low[p] = min(low[p], low[f.id])
			if low[f.id] > disc[p] {
				bridges = append(bridges, normalized(p, f.id))
			}
			if p != root && low[f.id] >= disc[p] {
				cut[p] = true
			}
		}

		if rootChildren > 1 {
			cut[root] = true
		}
	}

	rep := &Report{CutNodes: make([]string, 0, len(cut)), Bridges: bridges}
	for id := range cut {
		rep.CutNodes = append(rep.CutNodes, id)
	}
	sort.Strings(rep.CutNodes)
	sort.Slice(rep.Bridges, func(i, j int) bool {
		if rep.Bridges[i].From != rep.Bridges[j].From {
			return rep.Bridges[i].From < rep.Bridges[j].From
		}
		return rep.Bridges[i].To < rep.Bridges[j].To
	})

	return rep, nil
}

func normalized(u, v string) core.Edge {
	if v < u {
		u, v = v, u
	}
	return core.Edge{From: u, To: v}
}
