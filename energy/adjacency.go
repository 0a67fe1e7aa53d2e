// SPDX-License-Identifier: MIT
//
// File: adjacency.go
// Role: Adjacency matrix loader and writer (phase two of a network load).
// Policy:
//   - Only a missing or single-cell header is fatal.
//   - Unknown ids, short rows and diagonal cells are dropped and counted.

package energy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Connected is the only cell value that creates an edge.
const Connected = "1"

// LoadAdjacency parses a 0/1 adjacency matrix from r, keeping only edges
// whose both endpoints exist in reg.
//
// Implementation:
//   - Stage 1: Read the header; cells 2..N are column ids (cell 1 is ignored).
//   - Stage 2: For each data row, take cell 1 as the row id and connect it to
//     every column whose cell equals "1".
//   - Stage 3: Record dropped cells and skipped rows in Stats().
//
// Header ids and row ids are interpreted independently, so the matrix does
// not have to be square or share an ordering with the node table.
//
// Errors:
//   - *LoadError wrapping ErrMalformedInput for an empty or single-cell header
//     or an unreadable stream.
//   - ErrOptionViolation for invalid options.
//
// Complexity:
//   - Time O(R·K) for R rows and K header columns, Space O(V + E).
func LoadAdjacency(r io.Reader, reg *Registry, opts ...LoadOption) (*Adjacency, error) {
	o, err := resolveLoadOptions(opts)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry()
	}

	cr := newCSVReader(r, o.delimiter)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed(o.source, 0, "", "adjacency table has no header row")
	}
	if err != nil {
		return nil, csvLoadError(o.source, err)
	}
	if len(header) < 2 {
		return nil, malformed(o.source, 1, "", "adjacency header needs at least 2 cells, got %d", len(header))
	}
	columns := make([]string, len(header)-1)
	for i, h := range header[1:] {
		columns[i] = strings.TrimSpace(h)
	}

	adj := NewAdjacency()
	unknown := make(map[string]struct{})
	st := &adj.stats
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvLoadError(o.source, err)
		}
		st.Rows++
		line, _ := cr.FieldPos(0)

		if len(rec) < 2 || len(rec) < len(header) {
			st.SkippedRows++
			o.logger.Debug("skipping short adjacency row",
				zap.String("source", o.source), zap.Int("line", line), zap.Int("cells", len(rec)))
			continue
		}

		from := strings.TrimSpace(rec[0])
		for j, cell := range rec[1:len(header)] {
			if strings.TrimSpace(cell) != Connected {
				continue
			}
			to := columns[j]
			if !reg.Has(from) || !reg.Has(to) {
				st.DroppedUnknown++
				for _, id := range []string{from, to} {
					if id != "" && !reg.Has(id) {
						unknown[id] = struct{}{}
					}
				}
				continue
			}
			if from == to {
				st.DroppedSelfLoops++
				continue
			}
			if _, err := adj.Connect(from, to); err != nil {
				return nil, &LoadError{Source: o.source, Row: line, Column: to, Err: err}
			}
		}
	}

	st.Edges = adj.EdgeCount()
	st.UnknownIDs = make([]string, 0, len(unknown))
	for id := range unknown {
		st.UnknownIDs = append(st.UnknownIDs, id)
	}
	sort.Strings(st.UnknownIDs)

	if st.DroppedUnknown > 0 {
		o.logger.Warn("adjacency references nodes missing from the node table",
			zap.String("source", o.source), zap.Strings("ids", st.UnknownIDs), zap.Int("droppedCells", st.DroppedUnknown))
	}
	o.logger.Debug("adjacency table loaded",
		zap.String("source", o.source), zap.Int("rows", st.Rows), zap.Int("edges", st.Edges),
		zap.Int("skippedRows", st.SkippedRows))

	return adj, nil
}

// LoadAdjacencyFile opens path and calls LoadAdjacency with the path as source label.
func LoadAdjacencyFile(path string, reg *Registry, opts ...LoadOption) (*Adjacency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("energy: open adjacency table: %w", err)
	}
	defer f.Close()

	return LoadAdjacency(f, reg, append([]LoadOption{WithSource(path)}, opts...)...)
}

// WriteAdjacency writes a full symmetric 0/1 matrix over reg's ids in sorted
// order. The header's first cell is "Node".
//
// Complexity: O(V²).
func WriteAdjacency(w io.Writer, reg *Registry, adj *Adjacency) error {
	ids := reg.IDs()
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Node"}, ids...)); err != nil {
		return fmt.Errorf("energy: write adjacency header: %w", err)
	}
	row := make([]string, len(ids)+1)
	for _, u := range ids {
		row[0] = u
		for j, v := range ids {
			if adj.Connected(u, v) {
				row[j+1] = Connected
			} else {
				row[j+1] = "0"
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("energy: write adjacency row %q: %w", u, err)
		}
	}
	cw.Flush()

	return cw.Error()
}
