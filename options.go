package vanigo

import (
	"time"

	"github.com/hupe1980/vanigo/engine"
)

type options struct {
	workers         int
	capacity        int
	monitorInterval time.Duration
	throttle        engine.ThrottleConfig
	logger          *Logger
	metrics         MetricsCollector
}

// Option configures Vanigo constructor behavior.
type Option func(*options)

// WithWorkers sets the number of producer goroutines.
// If n <= 0 (the default), runtime.GOMAXPROCS(0) is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChannelCapacity sets the improvement channel capacity.
// Default: engine.DefaultChannelCapacity. Producers block when the channel
// is full.
func WithChannelCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMonitorInterval enables throughput monitoring with the given sampling
// interval. Disabled by default.
func WithMonitorInterval(d time.Duration) Option {
	return func(o *options) {
		o.monitorInterval = d
	}
}

// WithThrottle limits candidate generation; see engine.ThrottleConfig.
func WithThrottle(cfg engine.ThrottleConfig) Option {
	return func(o *options) {
		o.throttle = cfg
	}
}

// WithLogger sets the logger. If nil is passed, a text logger to stderr is
// used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NewLogger(nil)
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
