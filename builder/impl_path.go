// SPDX-License-Identifier: MIT
//
// impl_path.go — Path(n): a radial feeder line 0—1—…—(n-1).
//
// Contract:
//   - n ≥ 2 (else ErrTooFewNodes).
//   - Edges i—(i+1) for i asc.
//
// Complexity: O(n).

package builder

import "fmt"

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor for the path P_n.
func Path(n int) Constructor {
	return func(t *tables, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewNodes)
		}
		ids, err := t.addNodes(methodPath, n, cfg)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err = t.connect(methodPath, ids[i-1], ids[i]); err != nil {
				return err
			}
		}

		return nil
	}
}
