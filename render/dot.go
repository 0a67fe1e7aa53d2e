// SPDX-License-Identifier: MIT
//
// File: dot.go
// Role: Graphviz DOT export of a network.
// Output:
//   - Undirected graph; nodes filled with their category color.
//   - Edge labels "%.1f" when a strategy is set.
//   - Route edges drawn red with penwidth 3.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/strategy"
)

// Highlight style for route edges.
const (
	routeColor    = "red"
	routeWidth    = 3
	defaultGraph  = "EnergyNetwork"
	edgeLabelSpec = "%.1f"
)

// DOTOption configures DOT.
type DOTOption func(*dotOptions)

type dotOptions struct {
	name     string
	strategy *strategy.Strategy
	params   strategy.Params
	route    map[core.Edge]bool
}

// WithGraphName sets the DOT graph name. Empty names are ignored.
func WithGraphName(name string) DOTOption {
	return func(o *dotOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithStrategy labels every edge with its weight under s.
func WithStrategy(s strategy.Strategy, p strategy.Params) DOTOption {
	return func(o *dotOptions) {
		o.strategy = &s
		o.params = p
	}
}

// WithRoute highlights the given edges, typically dijkstra.Route.Edges().
func WithRoute(edges []core.Edge) DOTOption {
	return func(o *dotOptions) {
		for _, e := range edges {
			if e.To < e.From {
				e.From, e.To = e.To, e.From
			}
			o.route[e] = true
		}
	}
}

// DOT writes net in Graphviz DOT format to w.
//
// Errors: strategy validation errors when WithStrategy is used, or the
// first write error.
func DOT(w io.Writer, net *core.Network, opts ...DOTOption) error {
	o := dotOptions{name: defaultGraph, params: strategy.DefaultParams(), route: map[core.Edge]bool{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.strategy != nil {
		if err := o.strategy.Validate(); err != nil {
			return err
		}
		if err := o.params.Validate(); err != nil {
			return err
		}
	}

	ew := &errWriter{w: w}
	ew.printf("graph %s {\n", quote(o.name))
	ew.printf("  node [shape=circle, style=filled, fontname=\"Arial\"];\n")
	ew.printf("  edge [fontname=\"Arial\", fontsize=10];\n")

	for _, v := range NodeViews(net) {
		ew.printf("  %s [fillcolor=%s, tooltip=%s];\n", quote(v.ID), quote(v.Color), quote(v.EnergyNode.String()))
	}

	for _, e := range net.Edges() {
		var attrs []string
		if o.strategy != nil {
			a, _ := net.Node(e.From)
			b, _ := net.Node(e.To)
			attrs = append(attrs, "label="+quote(fmt.Sprintf(edgeLabelSpec, o.params.Weight(a, b, *o.strategy))))
		}
		if o.route[e] {
			attrs = append(attrs, "color="+quote(routeColor), fmt.Sprintf("penwidth=%d", routeWidth))
		}
		if len(attrs) == 0 {
			ew.printf("  %s -- %s;\n", quote(e.From), quote(e.To))
		} else {
			ew.printf("  %s -- %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, ", "))
		}
	}
	ew.printf("}\n")

	return ew.err
}

// quote renders s as a DOT double-quoted id.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)

	return `"` + s + `"`
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
