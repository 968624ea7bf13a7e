package openms

import (
	"log/slog"
	"runtime"
)

type options struct {
	metrics          MetricsCollector
	logger           *Logger
	buildParallelism int
}

// Option configures FeatureMaps constructor behavior.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &openms.BasicMetricsCollector{}
//	fm := openms.New(openms.WithMetricsCollector(metrics))
//	// ... use fm ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithBuildParallelism caps the number of goroutines used to build the
// tree. Values <= 1 build serially; the tree layout is identical either
// way. Defaults to GOMAXPROCS.
func WithBuildParallelism(n int) Option {
	return func(o *options) {
		o.buildParallelism = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metrics:          NoopMetricsCollector{},
		logger:           NoopLogger(),
		buildParallelism: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
