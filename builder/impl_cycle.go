// SPDX-License-Identifier: MIT
//
// impl_cycle.go — Cycle(n): a ring main 0—1—…—(n-1)—0.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewNodes); smaller rings would need a self-loop or
//     a repeated edge.
//   - Edges i—(i+1 mod n) for i asc.
//
// Complexity: O(n).

package builder

import "fmt"

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor for the cycle C_n.
func Cycle(n int) Constructor {
	return func(t *tables, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewNodes)
		}
		ids, err := t.addNodes(methodCycle, n, cfg)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err = t.connect(methodCycle, ids[i], ids[(i+1)%n]); err != nil {
				return err
			}
		}

		return nil
	}
}
