// SPDX-License-Identifier: MIT
//
// api.go — public entry points for the builder package.
//   - One orchestrator: Build(opts, cons...). Resolves cfg, runs cons in order.
//   - BuildNetwork wraps Build and composes a core.Network.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical tables.

package builder

import (
	"fmt"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
)

// Constructor adds nodes and edges to the tables under construction.
// Constructors validate parameters first and return sentinel errors wrapped
// with their method name; they never panic.
type Constructor func(t *tables, cfg builderConfig) error

// tables is the state shared by the constructors of one build.
type tables struct {
	reg *energy.Registry
	adj *energy.Adjacency
}

// Build resolves opts and applies every constructor in order to a fresh
// registry and adjacency.
//
// Errors:
//   - ErrConstructFailed for a nil constructor.
//   - Constructor errors wrapped as "Build: %w".
//
// Complexity: Σ cost of the constructors.
func Build(opts []BuilderOption, cons ...Constructor) (*energy.Registry, *energy.Adjacency, error) {
	cfg := newBuilderConfig(opts...)
	t := &tables{reg: energy.NewRegistry(), adj: energy.NewAdjacency()}

	for i, fn := range cons {
		if fn == nil {
			return nil, nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(t, cfg); err != nil {
			return nil, nil, fmt.Errorf("Build: %w", err)
		}
	}

	return t.reg, t.adj, nil
}

// BuildNetwork is Build followed by core.NewNetwork.
func BuildNetwork(opts []BuilderOption, cons ...Constructor) (*core.Network, error) {
	reg, adj, err := Build(opts, cons...)
	if err != nil {
		return nil, err
	}

	return core.NewNetwork(reg, adj)
}

// addNodes makes sure nodes 0..n-1 exist and returns their ids. Existing
// nodes keep their attributes.
func (t *tables) addNodes(method string, n int, cfg builderConfig) ([]string, error) {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id := cfg.idFn(i)
		ids[i] = id
		if t.reg.Has(id) {
			continue
		}
		node := cfg.attrFn(cfg.rng, i, id)
		node.ID = id
		if _, err := t.reg.Put(node); err != nil {
			return nil, fmt.Errorf("%s: node %d: %v: %w", method, i, err, ErrConstructFailed)
		}
	}

	return ids, nil
}

// connect adds the undirected edge u—v.
func (t *tables) connect(method, u, v string) error {
	if _, err := t.adj.Connect(u, v); err != nil {
		return fmt.Errorf("%s: Connect(%s,%s): %v: %w", method, u, v, err, ErrConstructFailed)
	}

	return nil
}
