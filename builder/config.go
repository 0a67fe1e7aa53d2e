// SPDX-License-Identifier: MIT
//
// config.go — internal configuration and deterministic defaults.
//   • idFn   = DefaultIDFn          ("0","1","2",...)
//   • rng    = nil                  (pure/deterministic unless seeded)
//   • attrFn = DefaultAttributeFn

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	idFn   IDFn
	rng    *rand.Rand // nil means no randomness
	attrFn AttributeFn
}

// newBuilderConfig applies opts in order over the defaults; last wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:   DefaultIDFn,
		attrFn: DefaultAttributeFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
