package engine

import "time"

// Generator derives a candidate from a search index value.
//
// It must be deterministic for a given index and must not synchronize with
// other workers; it is called concurrently from every worker goroutine.
// A non-nil error is fatal to the worker that hit it and terminates the run.
type Generator[T any] func(index uint64) (T, error)

// Comparator reports whether candidate ranks strictly better than current.
//
// current is nil while no best has been committed yet; in that case any
// candidate must be considered better. Ties must favor current so that an
// equally-ranked candidate never displaces a committed one.
//
// Comparators must be pure: repeated calls with the same operands return the
// same result.
type Comparator[T any] func(candidate T, current *T) bool

// Acceptor reports whether candidate satisfies the search goal. It is
// evaluated by the arbiter on committed candidates only; returning true stops
// the run.
type Acceptor[T any] func(candidate T) bool

// IndexSource hands out search index values to workers.
//
// Next returns the next index for the given worker and true, or false when
// the worker's share of the space is exhausted. Implementations must be safe
// for concurrent use by all workers; see the space package for built-ins.
type IndexSource interface {
	Next(worker int) (uint64, bool)
}

// Observer receives engine-level events for metrics collection.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveGenerated is called once per candidate produced, before the
	// comparator filter.
	ObserveGenerated()

	// ObserveForwarded is called when a worker sends a candidate to the
	// arbiter.
	ObserveForwarded()

	// ObserveCommit is called when the arbiter publishes a new best.
	ObserveCommit()

	// ObserveStale is called when the arbiter discards a candidate that
	// lost a race to a previously committed one.
	ObserveStale()

	// ObserveThroughput is called once per monitor interval with the
	// production rate in candidates per second.
	ObserveThroughput(perSec float64)
}

// NoopObserver is an Observer that discards all events.
type NoopObserver struct{}

func (NoopObserver) ObserveGenerated()                {}
func (NoopObserver) ObserveForwarded()                {}
func (NoopObserver) ObserveCommit()                   {}
func (NoopObserver) ObserveStale()                    {}
func (NoopObserver) ObserveThroughput(perSec float64) {}

// Logger is a minimal logging interface for the engine layer.
// The vanigo package adapts its structured logger to this interface.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Infof(format string, args ...any)  {}
func (noopLogger) Errorf(format string, args ...any) {}

// Stats is a point-in-time snapshot of run counters.
type Stats struct {
	// Generated is the number of candidates produced across all workers.
	Generated int64

	// Forwarded is the number of candidates that passed a worker's local
	// comparator check and were sent to the arbiter.
	Forwarded int64

	// Committed is the number of candidates published as a new best.
	Committed int64

	// Stale is the number of forwarded candidates the arbiter discarded
	// after re-validation.
	Stale int64

	// Accepted reports whether the acceptor fired.
	Accepted bool

	// Elapsed is the wall-clock duration since Run started.
	Elapsed time.Duration
}
