// SPDX-License-Identifier: MIT
//
// File: nodes.go
// Role: Node table loader and writer (phase one of a network load).
// Policy:
//   - Fail the whole load on the first bad row; never return a partial registry.
//   - Column order is free; columns are found by folded header name.

package energy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

type nodeColumn int

const (
	colID nodeColumn = iota
	colProduction
	colLoss
	colSustainability
	numNodeColumns
)

// Canonical header names written by WriteNodes.
var nodeHeader = [numNodeColumns]string{"Name", "Production", "Loss", "Sustainability"}

// nodeColumnAliases maps folded header names to columns. Spanish headers come
// from earlier exports of the same tables ("Pérdida" folds to "perdida").
var nodeColumnAliases = map[string]nodeColumn{
	"name":           colID,
	"nombre":         colID,
	"id":             colID,
	"node":           colID,
	"production":     colProduction,
	"produccion":     colProduction,
	"loss":           colLoss,
	"perdida":        colLoss,
	"sustainability": colSustainability,
	"sostenibilidad": colSustainability,
}

// LoadNodes parses a node table from r and returns a fully built Registry.
//
// Implementation:
//   - Stage 1: Read the header and resolve the four required columns.
//   - Stage 2: Parse each data row into an EnergyNode and validate its ranges.
//   - Stage 3: Store it; repeated ids overwrite (default) or fail (WithRejectDuplicates).
//
// Errors:
//   - *LoadError wrapping ErrMalformedInput for any structural or value problem.
//   - ErrOptionViolation for invalid options.
//
// Complexity:
//   - Time O(R), Space O(V) for R rows and V distinct ids.
func LoadNodes(r io.Reader, opts ...LoadOption) (*Registry, error) {
	o, err := resolveLoadOptions(opts)
	if err != nil {
		return nil, err
	}

	cr := newCSVReader(r, o.delimiter)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed(o.source, 0, "", "node table has no header row")
	}
	if err != nil {
		return nil, csvLoadError(o.source, err)
	}
	cols, err := resolveNodeColumns(header, o.source)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	duplicates := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvLoadError(o.source, err)
		}
		line, _ := cr.FieldPos(0)

		node, err := parseNodeRecord(rec, cols, header, o.source, line)
		if err != nil {
			return nil, err
		}
		if reg.Has(node.ID) {
			if o.rejectDuplicates {
				return nil, malformed(o.source, line, header[cols[colID]], "duplicate node id %q", node.ID)
			}
			duplicates++
			o.logger.Warn("duplicate node id, keeping the last row",
				zap.String("source", o.source), zap.Int("line", line), zap.String("id", node.ID))
		}
		if _, err = reg.Put(node); err != nil {
			return nil, &LoadError{Source: o.source, Row: line, Err: err}
		}
	}

	o.logger.Debug("node table loaded",
		zap.String("source", o.source), zap.Int("nodes", reg.Len()), zap.Int("duplicates", duplicates))

	return reg, nil
}

// LoadNodesFile opens path and calls LoadNodes with the path as source label.
func LoadNodesFile(path string, opts ...LoadOption) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("energy: open node table: %w", err)
	}
	defer f.Close()

	return LoadNodes(f, append([]LoadOption{WithSource(path)}, opts...)...)
}

// resolveNodeColumns locates every required column in header.
func resolveNodeColumns(header []string, source string) ([numNodeColumns]int, error) {
	var cols [numNodeColumns]int
	for i := range cols {
		cols[i] = -1
	}
	for i, h := range header {
		c, ok := nodeColumnAliases[FoldKey(h)]
		if !ok {
			continue
		}
		if cols[c] >= 0 {
			return cols, malformed(source, 1, h, "column duplicates %q", header[cols[c]])
		}
		cols[c] = i
	}
	for c, idx := range cols {
		if idx < 0 {
			return cols, malformed(source, 1, "", "missing required column %q", nodeHeader[c])
		}
	}

	return cols, nil
}

// parseNodeRecord converts one data row. All four fields are required.
func parseNodeRecord(rec []string, cols [numNodeColumns]int, header []string, source string, line int) (EnergyNode, error) {
	field := func(c nodeColumn) (string, error) {
		idx := cols[c]
		if idx >= len(rec) {
			return "", malformed(source, line, header[idx], "missing field")
		}
		v := strings.TrimSpace(rec[idx])
		if v == "" {
			return "", malformed(source, line, header[idx], "empty field")
		}

		return v, nil
	}
	number := func(c nodeColumn) (float64, error) {
		raw, err := field(c)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, malformed(source, line, header[cols[c]], "%q is not a number", raw)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, malformed(source, line, header[cols[c]], "%q is not finite", raw)
		}

		return v, nil
	}

	var (
		n   EnergyNode
		err error
	)
	if n.ID, err = field(colID); err != nil {
		return n, err
	}
	if n.Production, err = number(colProduction); err != nil {
		return n, err
	}
	if n.Loss, err = number(colLoss); err != nil {
		return n, err
	}
	if n.Sustainability, err = number(colSustainability); err != nil {
		return n, err
	}

	return n, nil
}

// WriteNodes writes reg as a node table with canonical English headers,
// rows in first-appearance order. LoadNodes(WriteNodes(reg)) reproduces reg.
func WriteNodes(w io.Writer, reg *Registry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(nodeHeader[:]); err != nil {
		return fmt.Errorf("energy: write node header: %w", err)
	}
	for _, id := range reg.Ordered() {
		n, _ := reg.Get(id)
		row := []string{n.ID, formatFloat(n.Production), formatFloat(n.Loss), formatFloat(n.Sustainability)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("energy: write node %q: %w", id, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1 // row width is validated by the loaders
	// With a whitespace delimiter csv would also swallow the delimiter and
	// shift empty cells away. Cells are trimmed by the loaders anyway.
	cr.TrimLeadingSpace = !unicode.IsSpace(delimiter)

	return cr
}

func csvLoadError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return malformed(source, pe.Line, "", "%v", pe.Err)
	}

	return &LoadError{Source: source, Err: fmt.Errorf("%w: %v", ErrMalformedInput, err)}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
