package analytics

import "go.uber.org/zap"

// ============================================================================
// DASHBOARD OPTIONS: Functional options for NewDashboard()
// ============================================================================

// Option configures dashboard behavior via functional options pattern.
type Option func(*options)

type options struct {
	Logger    *zap.Logger
	Histogram HistogramConfig
}

// WithLogger routes dashboard logs to logger. The default discards them.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithHistogram overrides the duration histogram span and bin width.
func WithHistogram(cfg HistogramConfig) Option {
	return func(o *options) {
		o.Histogram = cfg
	}
}

// applyOptions creates options from functional options.
func applyOptions(opts []Option) *options {
	o := &options{
		Logger:    zap.NewNop(),
		Histogram: DefaultHistogram,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
