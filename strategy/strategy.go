// Package strategy defines the closed set of routing objectives and the pure
// edge-weight function that turns two endpoint attributes into a cost.
//
// Every formula is non-negative for nodes that pass energy.EnergyNode.Validate,
// which is the precondition of the shortest-path search in package dijkstra.
//
//	MinimizeLoss            (lossA + lossB) / 2
//	MaximizeSustainability  C − (sustA + sustB) / 2      C = 200
//	MaximizeProduction      K / (prodA + prodB + 1)      K = 1000
package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/greenroute/energy"
)

// ErrInvalidStrategy indicates an unrecognized strategy token or value.
var ErrInvalidStrategy = errors.New("strategy: invalid strategy")

// ErrBadParams indicates weight constants that would allow negative costs.
var ErrBadParams = errors.New("strategy: invalid weight parameters")

// Strategy selects how edge weights are derived from node attributes.
type Strategy int

const (
	// MinimizeLoss prefers links between low-loss nodes.
	MinimizeLoss Strategy = iota
	// MaximizeSustainability prefers links between highly sustainable nodes.
	MaximizeSustainability
	// MaximizeProduction prefers links between high-production nodes.
	MaximizeProduction
	strategyCount
)

// All lists every strategy in declaration order.
func All() []Strategy {
	return []Strategy{MinimizeLoss, MaximizeSustainability, MaximizeProduction}
}

// String returns the canonical token accepted by Parse.
func (s Strategy) String() string {
	switch s {
	case MinimizeLoss:
		return "loss"
	case MaximizeSustainability:
		return "sustainability"
	case MaximizeProduction:
		return "production"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// IsValid reports whether s is one of the declared strategies.
func (s Strategy) IsValid() bool {
	return s >= MinimizeLoss && s < strategyCount
}

// Validate returns ErrInvalidStrategy for values outside the enumeration.
func (s Strategy) Validate() error {
	if !s.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidStrategy, int(s))
	}

	return nil
}

// tokens maps folded spellings to strategies. Numeric tokens follow
// declaration order, starting at 1.
var tokens = map[string]Strategy{
	"loss":                    MinimizeLoss,
	"minimize-loss":           MinimizeLoss,
	"minimizeloss":            MinimizeLoss,
	"perdida":                 MinimizeLoss,
	"1":                       MinimizeLoss,
	"sustainability":          MaximizeSustainability,
	"maximize-sustainability": MaximizeSustainability,
	"maximizesustainability":  MaximizeSustainability,
	"sostenibilidad":          MaximizeSustainability,
	"2":                       MaximizeSustainability,
	"production":              MaximizeProduction,
	"maximize-production":     MaximizeProduction,
	"maximizeproduction":      MaximizeProduction,
	"produccion":              MaximizeProduction,
	"3":                       MaximizeProduction,
}

// Parse resolves a user-supplied token (case- and accent-insensitive;
// '_' and ' ' are treated as '-').
func Parse(token string) (Strategy, error) {
	key := strings.NewReplacer("_", "-", " ", "-").Replace(energy.FoldKey(token))
	if s, ok := tokens[key]; ok {
		return s, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, token)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via Parse.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v

	return nil
}
