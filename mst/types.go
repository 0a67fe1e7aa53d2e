// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Backbone result, options and sentinel errors for the spanning
// backbone of an energy network.
// Determinism:
//   - Links are emitted in the order they join the backbone; ties on weight
//     are broken by (From, To) so equal inputs give equal outputs.

package mst

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/greenroute/strategy"
)

var (
	// ErrNilNetwork is returned when a nil *core.Network is passed in.
	ErrNilNetwork = errors.New("mst: network is nil")

	// ErrRootNotFound indicates that Prim's root is not in the network.
	ErrRootNotFound = errors.New("mst: root node not found")

	// ErrDisconnected is returned under WithRequireConnected when the
	// network has more than one island.
	ErrDisconnected = errors.New("mst: network is disconnected")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("mst: invalid option supplied")
)

// Link is one backbone connection with its cost under the chosen strategy.
// From < To lexicographically.
type Link struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Backbone is the cheapest set of links that keeps every island connected.
type Backbone struct {
	Links      []Link            `json:"links"`
	Cost       float64           `json:"cost"`
	Strategy   strategy.Strategy `json:"strategy"`
	Components int               `json:"components"`
}

// Option configures Kruskal and Prim.
type Option func(*Options)

// Options holds the knobs of a backbone computation.
type Options struct {
	// Params are the weight constants passed to strategy.Params.Weight.
	Params strategy.Params

	// RequireConnected turns a spanning forest into ErrDisconnected.
	RequireConnected bool

	err error
}

// DefaultOptions returns strategy.DefaultParams() and allows forests.
func DefaultOptions() Options {
	return Options{Params: strategy.DefaultParams()}
}

// WithParams overrides the weight constants.
func WithParams(p strategy.Params) Option {
	return func(o *Options) {
		if err := p.Validate(); err != nil {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, err)
			return
		}
		o.Params = p
	}
}

// WithRequireConnected makes Kruskal fail on a fragmented network.
func WithRequireConnected() Option {
	return func(o *Options) { o.RequireConnected = true }
}

func resolveOptions(s strategy.Strategy, opts []Option) (Options, error) {
	if err := s.Validate(); err != nil {
		return Options{}, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// less orders links by weight, then by endpoints.
func less(a, b Link) bool {
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}
