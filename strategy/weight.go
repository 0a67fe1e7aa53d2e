package strategy

import (
	"fmt"
	"math"

	"github.com/katalvlaran/greenroute/energy"
)

// Default weight constants.
const (
	// DefaultSustainabilityCeiling is C in C − (sustA + sustB)/2.
	DefaultSustainabilityCeiling = 200.0
	// DefaultProductionScale is K in K / (prodA + prodB + 1).
	DefaultProductionScale = 1000.0

	// minSustainabilityCeiling keeps C − avg(sust) ≥ 0 for sust ≤ 100.
	minSustainabilityCeiling = energy.MaxPercent
)

// Params holds the constants of the inverted ("maximize") formulas.
type Params struct {
	SustainabilityCeiling float64 `json:"sustainability_ceiling" yaml:"sustainability_ceiling" mapstructure:"sustainability_ceiling"`
	ProductionScale       float64 `json:"production_scale" yaml:"production_scale" mapstructure:"production_scale"`
}

// DefaultParams returns C = 200 and K = 1000.
func DefaultParams() Params {
	return Params{
		SustainabilityCeiling: DefaultSustainabilityCeiling,
		ProductionScale:       DefaultProductionScale,
	}
}

// Validate rejects constants that could yield negative or non-finite
// weights: C must be finite and ≥ 100, K finite and > 0.
func (p Params) Validate() error {
	if math.IsInf(p.SustainabilityCeiling, 0) || math.IsInf(p.ProductionScale, 0) {
		return fmt.Errorf("%w: constants must be finite (C=%g, K=%g)", ErrBadParams, p.SustainabilityCeiling, p.ProductionScale)
	}
	if !(p.SustainabilityCeiling >= minSustainabilityCeiling) {
		return fmt.Errorf("%w: sustainability ceiling %g < %g", ErrBadParams, p.SustainabilityCeiling, minSustainabilityCeiling)
	}
	if !(p.ProductionScale > 0) {
		return fmt.Errorf("%w: production scale %g must be positive", ErrBadParams, p.ProductionScale)
	}

	return nil
}

// Weight computes the cost of the undirected edge a—b under s using p.
// It is pure and symmetric: Weight(a, b) == Weight(b, a).
// An invalid s yields 0; callers validate the strategy at the boundary.
func (p Params) Weight(a, b energy.EnergyNode, s Strategy) float64 {
	switch s {
	case MinimizeLoss:
		return (a.Loss + b.Loss) / 2
	case MaximizeSustainability:
		return p.SustainabilityCeiling - (a.Sustainability+b.Sustainability)/2
	case MaximizeProduction:
		// +1 keeps the cost finite when both endpoints produce nothing.
		return p.ProductionScale / (a.Production + b.Production + 1)
	}

	return 0
}

// Weight computes the edge cost with DefaultParams.
func Weight(a, b energy.EnergyNode, s Strategy) float64 {
	return DefaultParams().Weight(a, b, s)
}
