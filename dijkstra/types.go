// Package dijkstra defines the result, option and error types of the
// strategy-aware route finder.
package dijkstra

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/strategy"
)

// Sentinel errors returned by the route finder.
var (
	// ErrNilNetwork indicates that a nil *core.Network was passed in.
	ErrNilNetwork = errors.New("dijkstra: network is nil")

	// ErrUnknownEndpoint indicates that start or end is not in the network.
	// It is wrapped with the endpoint role and id.
	ErrUnknownEndpoint = errors.New("dijkstra: unknown endpoint")

	// ErrNoRoute indicates that end is unreachable from start (or only
	// reachable beyond MaxCost).
	ErrNoRoute = errors.New("dijkstra: no route")

	// ErrNegativeWeight indicates a negative or NaN edge weight. Nodes that
	// pass energy.EnergyNode.Validate never produce one.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrInvalidPath indicates a path passed to PathCost that is not a walk
	// through the network.
	ErrInvalidPath = errors.New("dijkstra: path is not a walk in the network")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dijkstra: invalid option supplied")
)

// Hop is one step of a route with the weight it contributed.
type Hop struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Route is the result of a successful query. Path always starts with the
// start node and ends with the end node; Cost is finite and equals the sum
// of Hops[i].Weight.
type Route struct {
	Path     []string          `json:"path"`
	Cost     float64           `json:"cost"`
	Strategy strategy.Strategy `json:"strategy"`
	Hops     []Hop             `json:"hops"`
}

// Edges returns the hops as undirected edges normalized so From < To, the
// form render uses to highlight a route.
func (r *Route) Edges() []core.Edge {
	out := make([]core.Edge, len(r.Hops))
	for i, h := range r.Hops {
		if h.From < h.To {
			out[i] = core.Edge{From: h.From, To: h.To}
		} else {
			out[i] = core.Edge{From: h.To, To: h.From}
		}
	}

	return out
}

// Len returns the number of hops.
func (r *Route) Len() int { return len(r.Hops) }

// Option configures the route finder via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the knobs of a single query.
type Options struct {
	// Ctx allows cancellation and deadlines; checked once per heap pop.
	Ctx context.Context

	// Params are the weight constants passed to strategy.Params.Weight.
	Params strategy.Params

	// MaxCost prunes every candidate path whose cost exceeds it.
	// Default +Inf (no pruning).
	MaxCost float64

	err error
}

// DefaultOptions returns Options with context.Background(),
// strategy.DefaultParams() and no cost cap.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Params:  strategy.DefaultParams(),
		MaxCost: math.Inf(1),
	}
}

// WithContext sets a context for cancellation. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithParams overrides the weight constants. Params failing Validate are
// reported as ErrOptionViolation.
func WithParams(p strategy.Params) Option {
	return func(o *Options) {
		if err := p.Validate(); err != nil {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, err)
			return
		}
		o.Params = p
	}
}

// WithMaxCost caps the explored cost. Negative or NaN caps are rejected.
func WithMaxCost(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			o.err = fmt.Errorf("%w: max cost %g", ErrOptionViolation, max)
			return
		}
		o.MaxCost = max
	}
}

func resolveOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}
