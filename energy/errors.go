// SPDX-License-Identifier: MIT

package energy

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for table loading and registry/adjacency mutation.
var (
	// ErrMalformedInput indicates a missing or unparsable required field, a
	// malformed header, or an attribute outside its documented range.
	ErrMalformedInput = errors.New("energy: malformed input")

	// ErrUnknownNode indicates an identifier that is not in the registry.
	ErrUnknownNode = errors.New("energy: unknown node")

	// ErrSelfLoop indicates an attempt to connect a node to itself.
	ErrSelfLoop = errors.New("energy: self-loop not allowed")

	// ErrOptionViolation indicates an invalid LoadOption value.
	ErrOptionViolation = errors.New("energy: invalid option supplied")
)

// LoadError carries the location of a fatal table-loading failure.
// Err always wraps ErrMalformedInput, so errors.Is(err, ErrMalformedInput)
// holds for every *LoadError produced by this package.
type LoadError struct {
	Source string // file name or caller-provided label; may be empty
	Row    int    // 1-based line number in the source; 0 when not row specific
	Column string // header column name; may be empty
	Err    error
}

// Error renders "energy: <source>:<row>: column <col>: <cause>", omitting
// the parts that are unknown.
func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("energy: ")
	if e.Source != "" {
		b.WriteString(e.Source)
		if e.Row > 0 {
			fmt.Fprintf(&b, ":%d", e.Row)
		}
		b.WriteString(": ")
	} else if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, "column %q: ", e.Column)
	}
	b.WriteString(strings.TrimPrefix(e.Err.Error(), "energy: "))

	return b.String()
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *LoadError) Unwrap() error { return e.Err }

// malformed builds a *LoadError whose cause wraps ErrMalformedInput.
func malformed(source string, row int, column, format string, args ...interface{}) *LoadError {
	return &LoadError{
		Source: source,
		Row:    row,
		Column: column,
		Err:    fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedInput}, args...)...),
	}
}
