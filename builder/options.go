// SPDX-License-Identifier: MIT
//
// options.go — functional options for the builder package.
// Option constructors panic on nil functions; constructors never panic.

package builder

import "math/rand"

// BuilderOption mutates a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the node id generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithIDPrefix is shorthand for WithIDScheme(SymbolNumberIDFn(prefix)).
func WithIDPrefix(prefix string) BuilderOption {
	return WithIDScheme(SymbolNumberIDFn(prefix))
}

// WithCategoryIDs is shorthand for WithIDScheme(CategoryIDFn).
func WithCategoryIDs() BuilderOption {
	return WithIDScheme(CategoryIDFn)
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed installs a new *rand.Rand seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithAttributeFn overrides the node attribute generator. Panics on nil.
func WithAttributeFn(fn AttributeFn) BuilderOption {
	if fn == nil {
		panic("builder: WithAttributeFn(nil)")
	}
	return func(c *builderConfig) { c.attrFn = fn }
}
