package engine

import "time"

type options[T any] struct {
	numWorkers      int
	capacity        int
	throttle        *Throttle
	monitorInterval time.Duration
	onImprovement   func(T)
	onRate          func(perSec float64)
	logger          Logger
	observer        Observer
}

// Option configures an Engine.
type Option[T any] func(*options[T])

// WithWorkers sets the number of producer goroutines.
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithWorkers[T any](n int) Option[T] {
	return func(o *options[T]) {
		o.numWorkers = n
	}
}

// WithChannelCapacity sets the improvement channel capacity.
// Default: 10. Producers block when the channel is full; this is the
// backpressure bound on in-flight candidates.
func WithChannelCapacity[T any](n int) Option[T] {
	return func(o *options[T]) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithThrottle limits candidate generation. A nil throttle imposes no limits.
func WithThrottle[T any](t *Throttle) Option[T] {
	return func(o *options[T]) {
		o.throttle = t
	}
}

// WithMonitorInterval enables the throughput monitor with the given sampling
// interval. If d <= 0 (the default), the monitor is disabled.
func WithMonitorInterval[T any](d time.Duration) Option[T] {
	return func(o *options[T]) {
		o.monitorInterval = d
	}
}

// WithOnImprovement registers a callback invoked by the arbiter once per
// commit, in commit order. The callback runs on the arbiter goroutine and
// must not block for long: it stalls commits and, transitively, producers.
func WithOnImprovement[T any](fn func(T)) Option[T] {
	return func(o *options[T]) {
		o.onImprovement = fn
	}
}

// WithOnRate registers a callback for throughput samples.
// Only meaningful together with WithMonitorInterval.
func WithOnRate[T any](fn func(perSec float64)) Option[T] {
	return func(o *options[T]) {
		o.onRate = fn
	}
}

// WithLogger sets the logger for the engine.
func WithLogger[T any](l Logger) Option[T] {
	return func(o *options[T]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the metrics observer for the engine.
func WithObserver[T any](obs Observer) Option[T] {
	return func(o *options[T]) {
		if obs != nil {
			o.observer = obs
		}
	}
}
