package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource hands out 0, 1, 2, ... across all workers; exhausts at limit if
// limit > 0.
type seqSource struct {
	next  atomic.Uint64
	limit uint64
}

func (s *seqSource) Next(worker int) (uint64, bool) {
	idx := s.next.Add(1) - 1
	if s.limit > 0 && idx >= s.limit {
		return 0, false
	}
	return idx, true
}

// scored is a minimal ranked candidate: higher value wins, ties keep current.
type scored struct {
	value int
	tag   string
}

func scoredBetter(c scored, current *scored) bool {
	if current == nil {
		return true
	}
	return c.value > current.value
}

func modGen(mod uint64) Generator[scored] {
	return func(index uint64) (scored, error) {
		return scored{value: int(index % mod)}, nil
	}
}

func TestNew_Validation(t *testing.T) {
	gen := modGen(10)

	_, err := New[scored](nil, gen, scoredBetter, nil)
	require.Error(t, err)

	_, err = New[scored](&seqSource{}, nil, scoredBetter, nil)
	require.Error(t, err)

	_, err = New[scored](&seqSource{}, gen, nil, nil)
	require.Error(t, err)

	eng, err := New[scored](&seqSource{}, gen, scoredBetter, nil)
	require.NoError(t, err)
	require.NotNil(t, eng)
}

func TestEngine_AcceptanceStopsRun(t *testing.T) {
	eng, err := New(
		&seqSource{},
		modGen(100),
		scoredBetter,
		func(c scored) bool { return c.value >= 99 },
		WithWorkers[scored](4),
	)
	require.NoError(t, err)

	best, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99, best.value)

	stats := eng.Stats()
	assert.True(t, stats.Accepted)
	assert.Greater(t, stats.Committed, int64(0))
}

func TestEngine_SourceExhaustionEndsRun(t *testing.T) {
	eng, err := New(
		&seqSource{limit: 50},
		modGen(1000),
		scoredBetter,
		nil, // never accepts; the run ends when the space is exhausted
		WithWorkers[scored](3),
	)
	require.NoError(t, err)

	best, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 49, best.value)

	stats := eng.Stats()
	assert.Equal(t, int64(50), stats.Generated)
	assert.False(t, stats.Accepted)
}

func TestEngine_NoCandidate(t *testing.T) {
	eng, err := New(
		&seqSource{}, // never exhausts
		modGen(10),
		// Nothing is ever considered better, so nothing commits.
		func(c scored, current *scored) bool { return false },
		nil,
		WithWorkers[scored](2),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = eng.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEngine_ExhaustedEmptySpace(t *testing.T) {
	src := &seqSource{}
	src.next.Store(1)
	src.limit = 1 // already consumed

	eng, err := New(src, modGen(10), scoredBetter, nil, WithWorkers[scored](2))
	require.NoError(t, err)

	_, err = eng.Run(context.Background())
	require.ErrorIs(t, err, ErrNoCandidate)
}

func TestEngine_GeneratorErrorIsFatal(t *testing.T) {
	genErr := errors.New("bad derivation")

	eng, err := New(
		&seqSource{},
		func(index uint64) (scored, error) {
			if index == 7 {
				return scored{}, genErr
			}
			return scored{value: int(index)}, nil
		},
		scoredBetter,
		nil,
		WithWorkers[scored](2),
	)
	require.NoError(t, err)

	_, err = eng.Run(context.Background())
	require.ErrorIs(t, err, genErr)
}

func TestEngine_MonotonicImprovements(t *testing.T) {
	var improvements []scored

	eng, err := New(
		&seqSource{limit: 5000},
		modGen(1000),
		scoredBetter,
		nil,
		WithWorkers[scored](4),
		// The callback runs on the arbiter goroutine, so no locking needed.
		WithOnImprovement[scored](func(c scored) {
			improvements = append(improvements, c)
		}),
	)
	require.NoError(t, err)

	best, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 999, best.value)

	require.NotEmpty(t, improvements)
	for i := 1; i < len(improvements); i++ {
		assert.Greater(t, improvements[i].value, improvements[i-1].value,
			"commit %d did not improve on its predecessor", i)
	}

	stats := eng.Stats()
	assert.Equal(t, int64(len(improvements)), stats.Committed)
}

func TestEngine_MonitorKeepsRunTotals(t *testing.T) {
	const total = 500

	eng, err := New(
		&seqSource{limit: total},
		func(index uint64) (scored, error) {
			// Slow generation so several monitor ticks fire mid-run.
			time.Sleep(200 * time.Microsecond)
			return scored{value: int(index % 100)}, nil
		},
		scoredBetter,
		nil,
		WithWorkers[scored](4),
		WithMonitorInterval[scored](5*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(total), eng.Stats().Generated)
}

// TestArbiter_RaceOrderIndependence injects two genuine improvements in both
// orders and requires the identical final state: the strictly better one
// wins regardless of arrival order.
func TestArbiter_RaceOrderIndependence(t *testing.T) {
	a := scored{value: 10, tag: "a"}
	b := scored{value: 20, tag: "b"}

	for name, order := range map[string][]scored{
		"a then b": {a, b},
		"b then a": {b, a},
	} {
		t.Run(name, func(t *testing.T) {
			eng, err := New(&seqSource{}, modGen(10), scoredBetter, nil)
			require.NoError(t, err)

			in := make(chan scored, 2)
			for _, c := range order {
				in <- c
			}
			close(in)

			eng.arbitrate(in, func() {})

			best, ok := eng.Best()
			require.True(t, ok)
			assert.Equal(t, "b", best.tag)
		})
	}
}

func TestArbiter_TieStability(t *testing.T) {
	eng, err := New(&seqSource{}, modGen(10), scoredBetter, nil)
	require.NoError(t, err)

	in := make(chan scored, 2)
	in <- scored{value: 5, tag: "first"}
	in <- scored{value: 5, tag: "second"}
	close(in)

	eng.arbitrate(in, func() {})

	best, ok := eng.Best()
	require.True(t, ok)
	assert.Equal(t, "first", best.tag, "an equally-ranked candidate must not displace the committed one")
	assert.Equal(t, int64(1), eng.Stats().Stale)
}

// TestWorker_Backpressure stalls the consumer and checks that at most
// capacity candidates are buffered while the producer blocks instead of
// dropping.
func TestWorker_Backpressure(t *testing.T) {
	const capacity = 2

	eng, err := New(
		&seqSource{},
		modGen(1000000),
		// Everything looks like an improvement, so every candidate is sent.
		func(c scored, current *scored) bool { return true },
		nil,
		WithChannelCapacity[scored](capacity),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan scored, capacity)
	done := make(chan error, 1)
	go func() {
		done <- eng.produce(ctx, 0, out)
	}()

	require.Eventually(t, func() bool {
		return len(out) == capacity
	}, time.Second, time.Millisecond)

	// One more candidate may be in flight, held by the blocked send.
	require.Eventually(t, func() bool {
		return eng.produced.Load() == int64(capacity)+1
	}, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(capacity)+1, eng.produced.Load(), "producer must block, not keep generating")
	assert.Len(t, out, capacity)

	// Cancellation releases the blocked producer cleanly.
	cancel()
	require.NoError(t, <-done)
}

func TestEngine_CancellationConvergence(t *testing.T) {
	eng, err := New(
		&seqSource{},
		modGen(1000),
		scoredBetter,
		nil, // never accepts
		WithWorkers[scored](4),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	type result struct {
		best scored
		err  error
	}
	done := make(chan result, 1)
	go func() {
		best, err := eng.Run(ctx)
		done <- result{best: best, err: err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		require.ErrorIs(t, res.err, context.Canceled)
		assert.Greater(t, eng.Stats().Committed, int64(0), "best-so-far is still reported on cancellation")
		assert.GreaterOrEqual(t, res.best.value, 0)
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not converge after cancellation")
	}
}

func TestEngine_RunIsSingleShot(t *testing.T) {
	eng, err := New(
		&seqSource{},
		modGen(10),
		scoredBetter,
		nil,
		WithWorkers[scored](1),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = eng.Run(ctx)
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	_, err = eng.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestEngine_DoesNotRestartAfterCompletion(t *testing.T) {
	eng, err := New(
		&seqSource{limit: 10},
		modGen(100),
		scoredBetter,
		nil,
		WithWorkers[scored](2),
	)
	require.NoError(t, err)

	_, err = eng.Run(context.Background())
	require.NoError(t, err)

	_, err = eng.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRunning)

	// The finished run's counters stay untouched.
	assert.Equal(t, int64(10), eng.Stats().Generated)
}
