package network

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/observability"
	"github.com/katalvlaran/greenroute/strategy"
)

// ErrOptionViolation is returned by New when an Option is invalid.
var ErrOptionViolation = errors.New("network: invalid option supplied")

// Option configures a Service.
type Option func(*options)

type options struct {
	strategy strategy.Strategy
	params   strategy.Params
	loadOpts []energy.LoadOption
	logger   *zap.Logger
	metrics  *observability.Metrics
	err      error
}

func defaultOptions() options {
	return options{
		strategy: strategy.MinimizeLoss,
		params:   strategy.DefaultParams(),
		logger:   zap.NewNop(),
	}
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = observability.OrNop(l) }
}

// WithMetrics records loads and queries on m. Nil disables metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithStrategy sets the initial default strategy.
func WithStrategy(s strategy.Strategy) Option {
	return func(o *options) {
		if err := s.Validate(); err != nil {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, err)
			return
		}
		o.strategy = s
	}
}

// WithParams sets the weight constants applied to every query.
func WithParams(p strategy.Params) Option {
	return func(o *options) {
		if err := p.Validate(); err != nil {
			o.err = fmt.Errorf("%w: %v", ErrOptionViolation, err)
			return
		}
		o.params = p
	}
}

// WithLoadOptions passes loader options (delimiter, duplicate policy) to
// every table read.
func WithLoadOptions(opts ...energy.LoadOption) Option {
	return func(o *options) { o.loadOpts = append(o.loadOpts, opts...) }
}
