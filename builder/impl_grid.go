// SPDX-License-Identifier: MIT
//
// impl_grid.go — Grid(rows, cols): a meshed distribution grid.
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewNodes).
//   - Node index r*cols + c (row-major), so ids follow cfg.idFn.
//   - For each cell, edge to the right neighbor then to the bottom neighbor.
//
// Complexity: O(rows·cols).

package builder

import "fmt"

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor for a rows×cols 4-neighborhood grid.
func Grid(rows, cols int) Constructor {
	return func(t *tables, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewNodes)
		}
		ids, err := t.addNodes(methodGrid, rows*cols, cfg)
		if err != nil {
			return err
		}
		at := func(r, c int) string { return ids[r*cols+c] }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err = t.connect(methodGrid, at(r, c), at(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err = t.connect(methodGrid, at(r, c), at(r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
