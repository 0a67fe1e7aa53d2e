// SPDX-License-Identifier: MIT
//
// errors.go — sentinel errors for the builder package.
// Callers branch with errors.Is; constructors add "<Method>: ..." context
// with %w.

package builder

import "errors"

// ErrTooFewNodes indicates a size parameter below the constructor minimum.
var ErrTooFewNodes = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor without an RNG
// (set WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or a generated node or edge
// rejected by the energy tables.
var ErrConstructFailed = errors.New("builder: construction failed")
