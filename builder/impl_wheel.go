// SPDX-License-Identifier: MIT
//
// impl_wheel.go — Wheel(n): hub 0 plus a ring over 1..n-1.
//
// Contract:
//   - n ≥ 4 (else ErrTooFewNodes).
//   - Ring edges i—(i+1) over 1..n-1 then (n-1)—1, then spokes 0—i.
//
// Complexity: O(n).

package builder

import "fmt"

const (
	methodWheel   = "Wheel"
	minWheelNodes = 4
)

// Wheel returns a Constructor for the wheel W_n.
func Wheel(n int) Constructor {
	return func(t *tables, cfg builderConfig) error {
		if n < minWheelNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewNodes)
		}
		ids, err := t.addNodes(methodWheel, n, cfg)
		if err != nil {
			return err
		}
		ring := ids[1:]
		for i := range ring {
			if err = t.connect(methodWheel, ring[i], ring[(i+1)%len(ring)]); err != nil {
				return err
			}
		}
		for _, leaf := range ring {
			if err = t.connect(methodWheel, ids[0], leaf); err != nil {
				return err
			}
		}

		return nil
	}
}
