// SPDX-License-Identifier: MIT
//
// impl_complete.go — Complete(n): every pair connected.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewNodes). n == 1 yields a single isolated node.
//   - Edges i—j for i asc, j > i asc.
//
// Complexity: O(n²).

package builder

import "fmt"

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor for the complete graph K_n.
func Complete(n int) Constructor {
	return func(t *tables, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewNodes)
		}
		ids, err := t.addNodes(methodComplete, n, cfg)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err = t.connect(methodComplete, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
