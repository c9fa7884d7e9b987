package engine

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottleConfig holds generation limits.
type ThrottleConfig struct {
	// MaxActiveWorkers is the maximum number of workers generating
	// candidates at the same time. If 0, all workers generate freely.
	//
	// This caps CPU pressure without shrinking the pool: blocked workers
	// still react promptly to cancellation.
	MaxActiveWorkers int64

	// CandidatesPerSec is the maximum aggregate generation rate.
	// If 0, unlimited.
	CandidatesPerSec float64
}

// Throttle limits candidate generation for background-friendly searches.
//
// A nil *Throttle is valid and imposes no limits.
type Throttle struct {
	genSem  *semaphore.Weighted // nil if unlimited
	limiter *rate.Limiter       // nil if unlimited
}

// NewThrottle creates a throttle from cfg. Returns nil if cfg imposes no
// limits.
func NewThrottle(cfg ThrottleConfig) *Throttle {
	if cfg.MaxActiveWorkers <= 0 && cfg.CandidatesPerSec <= 0 {
		return nil
	}

	t := &Throttle{}

	if cfg.MaxActiveWorkers > 0 {
		t.genSem = semaphore.NewWeighted(cfg.MaxActiveWorkers)
	}

	if cfg.CandidatesPerSec > 0 {
		burst := int(cfg.CandidatesPerSec)
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.CandidatesPerSec), burst)
	}

	return t
}

// acquire blocks until the caller may generate one candidate.
// Returns ctx.Err() if the context is canceled while waiting.
func (t *Throttle) acquire(ctx context.Context) error {
	if t == nil {
		return nil
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if t.genSem != nil {
		if err := t.genSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	return nil
}

// release returns the generation slot taken by acquire.
func (t *Throttle) release() {
	if t == nil {
		return
	}
	if t.genSem != nil {
		t.genSem.Release(1)
	}
}
