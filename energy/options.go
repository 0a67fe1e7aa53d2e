package energy

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultDelimiter separates fields in both tables unless overridden.
const DefaultDelimiter = ','

// LoadOption configures LoadNodes and LoadAdjacency.
// Invalid values are recorded and surfaced as ErrOptionViolation when the
// loader runs.
type LoadOption func(*loadOptions)

type loadOptions struct {
	source           string
	delimiter        rune
	rejectDuplicates bool
	logger           *zap.Logger
	err              error
}

func defaultLoadOptions() loadOptions {
	return loadOptions{
		delimiter: DefaultDelimiter,
		logger:    zap.NewNop(),
	}
}

func resolveLoadOptions(opts []LoadOption) (loadOptions, error) {
	o := defaultLoadOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// WithSource labels errors and log lines with a file name or description.
func WithSource(name string) LoadOption {
	return func(o *loadOptions) { o.source = name }
}

// WithDelimiter sets the field separator (e.g. ';' or '\t').
func WithDelimiter(d rune) LoadOption {
	return func(o *loadOptions) {
		switch d {
		case 0, '"', '\r', '\n', 0xFFFD:
			o.err = fmt.Errorf("%w: delimiter %q", ErrOptionViolation, d)
		default:
			o.delimiter = d
		}
	}
}

// WithRejectDuplicates makes a repeated node identifier a fatal
// ErrMalformedInput instead of the default last-write-wins.
func WithRejectDuplicates() LoadOption {
	return func(o *loadOptions) { o.rejectDuplicates = true }
}

// WithLogger routes loader diagnostics (duplicates, skipped rows, dropped
// edges) to l. A nil logger keeps the default no-op logger.
func WithLogger(l *zap.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
