package render

import (
	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/strategy"
)

// NodeView is a node with its derived presentation attributes.
type NodeView struct {
	energy.EnergyNode
	Category Category `json:"category"`
	Color    string   `json:"color"`
}

// EdgeView is an undirected edge with its weight under one strategy.
type EdgeView struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Weight   float64           `json:"weight"`
	Strategy strategy.Strategy `json:"strategy"`
}

// NodeViews returns every node of net sorted by id.
func NodeViews(net *core.Network) []NodeView {
	nodes := net.Nodes()
	out := make([]NodeView, len(nodes))
	for i, n := range nodes {
		c := Classify(n)
		out[i] = NodeView{EnergyNode: n, Category: c, Color: Color(c)}
	}

	return out
}

// EdgeViews returns every edge of net, sorted by (From, To), weighted under
// s with params p.
//
// Errors: strategy.ErrInvalidStrategy, strategy.ErrBadParams.
func EdgeViews(net *core.Network, s strategy.Strategy, p strategy.Params) ([]EdgeView, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	edges := net.Edges()
	out := make([]EdgeView, len(edges))
	for i, e := range edges {
		a, _ := net.Node(e.From)
		b, _ := net.Node(e.To)
		out[i] = EdgeView{From: e.From, To: e.To, Weight: p.Weight(a, b, s), Strategy: s}
	}

	return out, nil
}
