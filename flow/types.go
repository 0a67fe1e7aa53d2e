package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/greenroute/core"
)

var (
	// ErrNilNetwork is returned when a nil *core.Network is passed in.
	ErrNilNetwork = errors.New("flow: network is nil")

	// ErrSourceNotFound is returned when the source node is missing.
	ErrSourceNotFound = errors.New("flow: source node not found")

	// ErrSinkNotFound is returned when the sink node is missing.
	ErrSinkNotFound = errors.New("flow: sink node not found")

	// ErrSameEndpoints is returned when source and sink are the same node.
	ErrSameEndpoints = errors.New("flow: source and sink are the same node")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("flow: invalid option supplied")
)

// Mode selects what independent routes may not share.
type Mode int

const (
	// LinkDisjoint routes share no link; they may pass through the same node.
	LinkDisjoint Mode = iota
	// NodeDisjoint routes share no node other than source and sink.
	NodeDisjoint
)

// String returns "links" or "nodes".
func (m Mode) String() string {
	if m == NodeDisjoint {
		return "nodes"
	}
	return "links"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ParseMode accepts "links" or "nodes"; "" means LinkDisjoint.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "links", "link":
		return LinkDisjoint, nil
	case "nodes", "node":
		return NodeDisjoint, nil
	}
	return 0, fmt.Errorf("%w: mode %q", ErrOptionViolation, s)
}

// Options configures Redundancy.
//   - Ctx: checked once per augmenting search.
//   - Mode: LinkDisjoint (default) or NodeDisjoint.
//   - MaxRoutes: stop after this many routes; 0 means no limit.
type Options struct {
	Ctx       context.Context
	Mode      Mode
	MaxRoutes int

	err error
}

// Option configures Redundancy.
type Option func(*Options)

// WithContext sets the cancellation context. Nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMode selects link- or node-disjoint routes.
func WithMode(m Mode) Option {
	return func(o *Options) {
		if m != LinkDisjoint && m != NodeDisjoint {
			o.err = fmt.Errorf("%w: mode %d", ErrOptionViolation, int(m))
			return
		}
		o.Mode = m
	}
}

// WithMaxRoutes stops the search once k routes are found. k must be ≥ 0.
func WithMaxRoutes(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = fmt.Errorf("%w: max routes %d", ErrOptionViolation, k)
			return
		}
		o.MaxRoutes = k
	}
}

// Result reports how many independent routes join Source and Sink.
//
// Routes lists one decomposition of the maximum flow, shortest first.
// Unless MaxRoutes stopped the search early, removing the links in CutLinks
// (LinkDisjoint) or the nodes in CutNodes (NodeDisjoint) disconnects Sink from
// Source, and no smaller set does.
type Result struct {
	Source   string      `json:"source"`
	Sink     string      `json:"sink"`
	Mode     Mode        `json:"mode"`
	Count    int         `json:"count"`
	Routes   [][]string  `json:"routes"`
	CutLinks []core.Edge `json:"cut_links,omitempty"`
	CutNodes []string    `json:"cut_nodes,omitempty"`
}
