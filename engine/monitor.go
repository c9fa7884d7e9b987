package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// monitor samples the production counter once per interval and reports the
// rate. It is purely observational: it shares nothing with the workers beyond
// one atomic counter and cannot stall them or disturb the run totals.
type monitor struct {
	produced *atomic.Int64
	interval time.Duration
	logger   Logger
	observer Observer
	onRate   func(perSec float64)

	// lastSeen is the total at the previous tick; only the monitor
	// goroutine touches it. The counter itself is never reset, so Stats
	// keeps reporting the true run total.
	lastSeen int64
}

// run samples until ctx is canceled. Each tick reads the monotonically
// growing total and reports the delta since the previous tick; concurrent
// increments are never lost, only attributed to the next interval.
func (m *monitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			total := m.produced.Load()
			n := total - m.lastSeen
			m.lastSeen = total
			perSec := float64(n) / m.interval.Seconds()

			m.logger.Infof("throughput: %.0f candidates/s", perSec)
			m.observer.ObserveThroughput(perSec)
			if m.onRate != nil {
				m.onRate(perSec)
			}
		}
	}
}
