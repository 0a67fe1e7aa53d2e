// SPDX-License-Identifier: MIT
//
// attr_fn.go — node attribute generators.
// Every generator must return values inside the EnergyNode domains so that
// generated tables load back without errors.

package builder

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/greenroute/energy"
)

// AttributeFn produces the attributes of the node with index idx and id.
// rng may be nil; implementations must then be deterministic in idx.
type AttributeFn func(rng *rand.Rand, idx int, id string) energy.EnergyNode

// Attribute ranges used by the default generator.
const (
	producerEvery    = 4     // every 4th index produces power
	maxProduction    = 500.0 // kW
	minProduction    = 10.0  // kW; producers never round to 0
	maxGeneratedLoss = 15.0  // percent
	minGeneratedSust = 20.0  // score
)

// DefaultAttributeFn gives positive production to indices divisible by 4
// (the Solar slots of CategoryIDFn) and zero elsewhere. Loss lies in [0,15]
// and sustainability in [20,100], rounded to one decimal.
//
// Without an RNG the values follow a fixed pattern in idx.
func DefaultAttributeFn(rng *rand.Rand, idx int, id string) energy.EnergyNode {
	n := energy.EnergyNode{ID: id}
	producer := idx%producerEvery == 0

	if rng == nil {
		if producer {
			n.Production = 100
		}
		n.Loss = float64(1 + idx%10)
		n.Sustainability = float64(40 + (idx*7)%60)
		return n
	}

	if producer {
		n.Production = round1(minProduction + rng.Float64()*(maxProduction-minProduction))
	}
	n.Loss = round1(rng.Float64() * maxGeneratedLoss)
	n.Sustainability = round1(minGeneratedSust + rng.Float64()*(energy.MaxPercent-minGeneratedSust))

	return n
}

// ConstantAttributeFn returns the same attributes for every node.
// Values are clamped into their domains.
func ConstantAttributeFn(production, loss, sustainability float64) AttributeFn {
	production = math.Max(production, 0)
	loss = clampPercent(loss)
	sustainability = clampPercent(sustainability)

	return func(_ *rand.Rand, _ int, id string) energy.EnergyNode {
		return energy.EnergyNode{ID: id, Production: production, Loss: loss, Sustainability: sustainability}
	}
}

// UniformAttributeFn draws every attribute uniformly from the full domain
// ([0,maxProd] kW, [0,100] percent). With a nil RNG it degrades to the
// midpoints.
func UniformAttributeFn(maxProd float64) AttributeFn {
	maxProd = math.Max(maxProd, 0)

	return func(rng *rand.Rand, _ int, id string) energy.EnergyNode {
		if rng == nil {
			return energy.EnergyNode{ID: id, Production: maxProd / 2, Loss: 50, Sustainability: 50}
		}
		return energy.EnergyNode{
			ID:             id,
			Production:     rng.Float64() * maxProd,
			Loss:           rng.Float64() * energy.MaxPercent,
			Sustainability: rng.Float64() * energy.MaxPercent,
		}
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func clampPercent(v float64) float64 {
	return math.Min(math.Max(v, energy.MinPercent), energy.MaxPercent)
}
