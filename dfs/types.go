// Package dfs defines the options, results and errors of depth-first
// traversal and of the critical-infrastructure analysis built on it.
package dfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/greenroute/core"
)

// Visitation states of a node during a search.
const (
	White = iota // not discovered yet
	Gray         // on the current search path
	Black        // fully explored
)

var (
	// ErrNetworkNil is returned when a nil *core.Network is passed in.
	ErrNetworkNil = errors.New("dfs: network is nil")

	// ErrStartNotFound indicates that the start node is not in the network.
	ErrStartNotFound = errors.New("dfs: start node not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dfs: invalid option supplied")
)

// Option configures a traversal.
type Option func(*Options)

// Options holds the knobs of DFS and Critical.
type Options struct {
	// Ctx allows cancellation; checked once per discovered node.
	Ctx context.Context

	// OnVisit runs when a node is discovered (pre-order). An error aborts.
	OnVisit func(id string) error

	// OnExit runs after a node's descendants are explored (post-order),
	// before it is appended to Result.Order. An error aborts.
	OnExit func(id string) error

	// MaxDepth limits the search depth; -1 means unlimited.
	MaxDepth int

	// FilterNeighbor skips a neighbor when it returns false.
	FilterNeighbor func(from, to string) bool

	// FullTraversal restarts the search from every undiscovered node in
	// sorted order, covering every island.
	FullTraversal bool

	err error
}

// DefaultOptions returns a single-source, unlimited, hook-free configuration.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the cancellation context. Nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(id string) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(id string) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithMaxDepth limits the depth; negative limits are rejected.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		if limit < 0 {
			o.err = fmt.Errorf("%w: max depth %d", ErrOptionViolation, limit)
			return
		}
		o.MaxDepth = limit
	}
}

// WithFilterNeighbor skips edges for which fn returns false.
func WithFilterNeighbor(fn func(from, to string) bool) Option {
	return func(o *Options) { o.FilterNeighbor = fn }
}

// WithFullTraversal covers every island instead of only the start's.
func WithFullTraversal() Option {
	return func(o *Options) { o.FullTraversal = true }
}

func resolve(net *core.Network, opts []Option) (Options, error) {
	if net == nil {
		return Options{}, ErrNetworkNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// Result collects the outcome of DFS.
type Result struct {
	// Order lists nodes in post-order (finish order).
	Order []string

	// Depth maps each discovered node to its tree depth (roots are 0).
	Depth map[string]int

	// Parent maps each non-root discovered node to its tree parent.
	Parent map[string]string

	// Visited marks discovered nodes.
	Visited map[string]bool

	// SkippedNeighbors counts edges rejected by FilterNeighbor.
	SkippedNeighbors int
}

// Report lists the single points of failure of a network.
type Report struct {
	// CutNodes are nodes whose removal splits their island, sorted.
	CutNodes []string `json:"cut_nodes"`

	// Bridges are links whose removal splits their island, sorted and
	// normalized so From < To.
	Bridges []core.Edge `json:"bridges"`
}
