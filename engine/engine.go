package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultChannelCapacity is the default bound on in-flight improvements.
// Small on purpose: the channel exists to decouple producers from the
// arbiter, not to buffer work.
const DefaultChannelCapacity = 10

// ErrAlreadyRunning is returned by Run if the engine was already started.
// An Engine is single-shot; construct a new one for another run.
var ErrAlreadyRunning = errors.New("engine: already started")

// Engine coordinates a pool of candidate producers, a bounded improvement
// channel and a single arbiter around one shared Best cell.
//
// An Engine is single-shot: Run may be called once, and later calls return
// ErrAlreadyRunning. Stats and Best may be read concurrently at any time.
type Engine[T any] struct {
	source IndexSource
	gen    Generator[T]
	cmp    Comparator[T]
	acc    Acceptor[T]
	opts   options[T]

	best Best[T]

	produced   atomic.Int64
	forwarded  atomic.Int64
	committed  atomic.Int64
	stale      atomic.Int64
	accepted   atomic.Bool
	startNanos atomic.Int64
	running    atomic.Bool
}

// New constructs an Engine.
//
// source, gen and cmp are required. acc may be nil, in which case the run
// never self-terminates and ends only on context cancellation or source
// exhaustion.
func New[T any](source IndexSource, gen Generator[T], cmp Comparator[T], acc Acceptor[T], optFns ...Option[T]) (*Engine[T], error) {
	if source == nil {
		return nil, fmt.Errorf("engine: index source is nil")
	}
	if gen == nil {
		return nil, fmt.Errorf("engine: generator is nil")
	}
	if cmp == nil {
		return nil, fmt.Errorf("engine: comparator is nil")
	}

	opts := options[T]{
		capacity: DefaultChannelCapacity,
		logger:   noopLogger{},
		observer: NoopObserver{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.numWorkers <= 0 {
		opts.numWorkers = runtime.GOMAXPROCS(0)
	}

	return &Engine[T]{
		source: source,
		gen:    gen,
		cmp:    cmp,
		acc:    acc,
		opts:   opts,
	}, nil
}

// Run executes the search until the acceptor fires, the index source is
// exhausted, or ctx is canceled.
//
// It returns the best candidate found. If ctx was canceled before acceptance
// the best-so-far is returned together with the context error; if no
// candidate was ever committed, ErrNoCandidate (or the context error) is
// returned. A generator failure terminates the run and takes precedence.
func (e *Engine[T]) Run(ctx context.Context) (T, error) {
	var zero T

	// The flag latches: counters and the accepted state describe exactly one
	// run, so a finished engine refuses to restart instead of accumulating.
	if !e.running.CompareAndSwap(false, true) {
		return zero, ErrAlreadyRunning
	}

	e.startNanos.Store(time.Now().UnixNano())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	improved := make(chan T, e.opts.capacity)

	var monWG sync.WaitGroup
	if e.opts.monitorInterval > 0 {
		mon := &monitor{
			produced: &e.produced,
			interval: e.opts.monitorInterval,
			logger:   e.opts.logger,
			observer: e.opts.observer,
			onRate:   e.opts.onRate,
		}
		monWG.Add(1)
		go func() {
			defer monWG.Done()
			mon.run(runCtx)
		}()
	}

	// Workers run under an errgroup so that a generator failure cancels the
	// whole pool instead of silently shrinking it.
	g, workerCtx := errgroup.WithContext(runCtx)
	for w := 0; w < e.opts.numWorkers; w++ {
		g.Go(func() error {
			return e.produce(workerCtx, w, improved)
		})
	}

	// The channel is closed once every producer has exited; that close is
	// the arbiter's end-of-work condition.
	workersDone := make(chan error, 1)
	go func() {
		err := g.Wait()
		close(improved)
		workersDone <- err
	}()

	// The arbiter runs on the calling goroutine and keeps draining until the
	// channel closes, so no producer stays blocked on a send after
	// cancellation.
	e.arbitrate(improved, cancel)

	werr := <-workersDone
	cancel()
	monWG.Wait()

	if werr != nil {
		return zero, werr
	}

	best, ok := e.best.Load()
	if !ok {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, ErrNoCandidate
	}

	if !e.accepted.Load() {
		if err := ctx.Err(); err != nil {
			return best, err
		}
	}

	return best, nil
}

// produce is one worker's loop: draw an index, derive a candidate, filter it
// against a fresh Best snapshot and forward apparent improvements.
//
// The local filter is an optimization only; the arbiter re-validates because
// the snapshot may be stale by the time the candidate crosses the channel.
func (e *Engine[T]) produce(ctx context.Context, worker int, out chan<- T) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		idx, ok := e.source.Next(worker)
		if !ok {
			return nil
		}

		if err := e.opts.throttle.acquire(ctx); err != nil {
			// Canceled while waiting for a slot; orderly stop.
			return nil
		}
		c, err := e.gen(idx)
		e.opts.throttle.release()
		if err != nil {
			return fmt.Errorf("engine: worker %d: generate index %d: %w", worker, idx, err)
		}

		e.produced.Add(1)
		e.opts.observer.ObserveGenerated()

		if !e.cmp(c, e.best.Snapshot()) {
			continue
		}

		e.forwarded.Add(1)
		e.opts.observer.ObserveForwarded()

		select {
		case out <- c:
		case <-ctx.Done():
			return nil
		}
	}
}

// arbitrate is the single consumer loop and the only writer of Best.
//
// Every received candidate is re-checked against the current best: two
// workers can both beat a stale best concurrently, and their messages arrive
// in arbitrary order. Losing that race is expected, not an error.
func (e *Engine[T]) arbitrate(in <-chan T, cancel context.CancelFunc) {
	for c := range in {
		if !e.cmp(c, e.best.Snapshot()) {
			e.stale.Add(1)
			e.opts.observer.ObserveStale()
			continue
		}

		e.best.commit(c)
		e.committed.Add(1)
		e.opts.observer.ObserveCommit()

		if e.opts.onImprovement != nil {
			e.opts.onImprovement(c)
		}

		if e.acc != nil && e.acc(c) {
			if e.accepted.CompareAndSwap(false, true) {
				e.opts.logger.Infof("acceptable candidate committed, stopping workers")
			}
			cancel()
		}
	}
}

// Best returns the current best candidate, if any. Safe to call at any time,
// including while a run is in progress.
func (e *Engine[T]) Best() (T, bool) {
	return e.best.Load()
}

// Stats returns a snapshot of the run counters.
func (e *Engine[T]) Stats() Stats {
	var elapsed time.Duration
	if s := e.startNanos.Load(); s != 0 {
		elapsed = time.Since(time.Unix(0, s))
	}

	return Stats{
		Generated: e.produced.Load(),
		Forwarded: e.forwarded.Load(),
		Committed: e.committed.Load(),
		Stale:     e.stale.Load(),
		Accepted:  e.accepted.Load(),
		Elapsed:   elapsed,
	}
}
