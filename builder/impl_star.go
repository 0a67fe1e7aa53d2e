// SPDX-License-Identifier: MIT
//
// impl_star.go — Star(n): node 0 is the hub (a substation feeding n-1 leaves).
//
// Contract:
//   - n ≥ 2 (else ErrTooFewNodes).
//   - Edges 0—i for i in 1..n-1.
//
// Complexity: O(n).

package builder

import "fmt"

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor for the star K_{1,n-1} centered on index 0.
func Star(n int) Constructor {
	return func(t *tables, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewNodes)
		}
		ids, err := t.addNodes(methodStar, n, cfg)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err = t.connect(methodStar, ids[0], ids[i]); err != nil {
				return err
			}
		}

		return nil
	}
}
