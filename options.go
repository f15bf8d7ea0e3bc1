package dictgo

import (
	"log/slog"
)

// DefaultMinCapacity is the starting slot count of a dictionary's backing
// table when no override is given.
const DefaultMinCapacity = 1024

type options struct {
	minCapacity      uint32
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Dict construction behavior.
type Option func(*options)

// WithMinCapacity configures the minimum starting capacity of the backing
// table. The table never shrinks below it. Values are rounded up to a power
// of two; zero selects DefaultMinCapacity.
func WithMinCapacity(capacity uint32) Option {
	return func(o *options) {
		if capacity == 0 {
			capacity = DefaultMinCapacity
		}
		o.minCapacity = capacity
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &dictgo.BasicMetricsCollector{}
//	d, _ := dictgo.New(dictgo.WithMetricsCollector(metrics))
//	// ... use d ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Hits: %d\n", stats.InsertCount, stats.InsertHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := dictgo.NewJSONLogger(slog.LevelInfo)
//	d, _ := dictgo.New(dictgo.WithLogger(logger))
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

func applyOptions(optFns []Option) options {
	o := options{
		minCapacity:      DefaultMinCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
