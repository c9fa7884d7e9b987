package vanigo

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hupe1980/vanigo/engine"
)

// Recorder persists committed improvements; *journal.Journal satisfies it.
type Recorder[T any] interface {
	// Append records one committed improvement.
	Append(ctx context.Context, v T) error

	// Accept records the accepted candidate.
	Accept(ctx context.Context, v T) error
}

// Vanigo is the facade around one configured search: the engine core plus
// logging, metrics and optional journaling.
//
// Runs are sequential (one at a time), but Best and Stats may be read
// concurrently while a run is in progress.
type Vanigo[T any] struct {
	source engine.IndexSource
	gen    engine.Generator[T]
	cmp    engine.Comparator[T]
	acc    engine.Acceptor[T]
	opts   options

	recorder      Recorder[T]
	onImprovement func(T)

	current atomic.Pointer[engine.Engine[T]]
}

// New constructs a Vanigo for a custom candidate type.
//
// source, gen and cmp are required; acc may be nil for searches that run
// until the source is exhausted or the context is canceled. For the built-in
// vanity address search, use the Vanity builder instead.
func New[T any](source engine.IndexSource, gen engine.Generator[T], cmp engine.Comparator[T], acc engine.Acceptor[T], optFns ...Option) (*Vanigo[T], error) {
	if source == nil {
		return nil, fmt.Errorf("vanigo: index source is nil")
	}
	if gen == nil {
		return nil, fmt.Errorf("vanigo: generator is nil")
	}
	if cmp == nil {
		return nil, fmt.Errorf("vanigo: comparator is nil")
	}

	opts := options{
		logger:  NewLogger(nil),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Vanigo[T]{
		source: source,
		gen:    gen,
		cmp:    cmp,
		acc:    acc,
		opts:   opts,
	}, nil
}

// SetRecorder attaches a Recorder that persists every committed improvement
// and the accepted result. Must be called before Run.
func (v *Vanigo[T]) SetRecorder(r Recorder[T]) {
	v.recorder = r
}

// SetOnImprovement registers a callback invoked once per commit, in commit
// order, on the arbiter goroutine. Must be called before Run.
func (v *Vanigo[T]) SetOnImprovement(fn func(T)) {
	v.onImprovement = fn
}

// Run executes the search until acceptance, source exhaustion or context
// cancellation, and returns the best candidate found.
func (v *Vanigo[T]) Run(ctx context.Context) (T, error) {
	var zero T

	start := time.Now()
	logger := v.opts.logger

	eng, err := v.newEngine(ctx)
	if err != nil {
		return zero, err
	}
	v.current.Store(eng)

	best, err := eng.Run(ctx)
	err = translateError(err)

	stats := eng.Stats()
	logger.LogRun(ctx, stats, err)
	v.opts.metrics.RecordRun(time.Since(start), err)

	if err != nil {
		return best, err
	}

	if stats.Accepted {
		logger.LogAccepted(ctx, best, stats.Elapsed)

		if v.recorder != nil {
			if rerr := v.recorder.Accept(ctx, best); rerr != nil {
				return best, fmt.Errorf("vanigo: record accepted candidate: %w", rerr)
			}
		}
	}

	return best, nil
}

// Best returns the best candidate committed so far, if any.
func (v *Vanigo[T]) Best() (T, bool) {
	if eng := v.current.Load(); eng != nil {
		return eng.Best()
	}
	var zero T
	return zero, false
}

// Stats returns counters for the current (or most recent) run.
func (v *Vanigo[T]) Stats() engine.Stats {
	if eng := v.current.Load(); eng != nil {
		return eng.Stats()
	}
	return engine.Stats{}
}

// newEngine assembles a fresh engine for one run, wiring the improvement
// callback to logging, journaling and the caller's hook.
func (v *Vanigo[T]) newEngine(ctx context.Context) (*engine.Engine[T], error) {
	logger := v.opts.logger

	onImprovement := func(c T) {
		logger.LogImprovement(ctx, c)

		if v.recorder != nil {
			if err := v.recorder.Append(ctx, c); err != nil {
				// Journaling is best-effort during the run; the accepted
				// result is still recorded separately at the end.
				logger.Error("record improvement failed", "error", err)
			}
		}

		if v.onImprovement != nil {
			v.onImprovement(c)
		}
	}

	engOpts := []engine.Option[T]{
		engine.WithWorkers[T](v.opts.workers),
		engine.WithLogger[T](engineLogger{l: logger}),
		engine.WithObserver[T](engineObserver{mc: v.opts.metrics}),
		engine.WithOnImprovement[T](onImprovement),
		engine.WithThrottle[T](engine.NewThrottle(v.opts.throttle)),
	}
	if v.opts.capacity > 0 {
		engOpts = append(engOpts, engine.WithChannelCapacity[T](v.opts.capacity))
	}
	if v.opts.monitorInterval > 0 {
		engOpts = append(engOpts, engine.WithMonitorInterval[T](v.opts.monitorInterval))
	}

	return engine.New(v.source, v.gen, v.cmp, v.acc, engOpts...)
}
