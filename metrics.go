package vanigo

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    generatedCounter prometheus.Counter
//	    commitCounter    prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordGenerated() {
//	    p.generatedCounter.Inc()
//	}
type MetricsCollector interface {
	// RecordGenerated is called once per candidate produced, before
	// filtering.
	RecordGenerated()

	// RecordForwarded is called when a worker forwards a candidate to the
	// arbiter.
	RecordForwarded()

	// RecordCommit is called when the arbiter publishes a new best.
	RecordCommit()

	// RecordStale is called when the arbiter discards a candidate that lost
	// a race to a previous commit.
	RecordStale()

	// RecordThroughput is called once per monitor interval with the
	// production rate in candidates per second.
	RecordThroughput(perSec float64)

	// RecordRun is called once per run with the total duration.
	// err is nil if the run ended in acceptance or exhaustion.
	RecordRun(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGenerated()                {}
func (NoopMetricsCollector) RecordForwarded()                {}
func (NoopMetricsCollector) RecordCommit()                   {}
func (NoopMetricsCollector) RecordStale()                    {}
func (NoopMetricsCollector) RecordThroughput(perSec float64) {}
func (NoopMetricsCollector) RecordRun(time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GeneratedCount atomic.Int64
	ForwardedCount atomic.Int64
	CommitCount    atomic.Int64
	StaleCount     atomic.Int64
	RunCount       atomic.Int64
	RunErrors      atomic.Int64
	RunTotalNanos  atomic.Int64

	lastRate atomic.Uint64 // float64 bits
}

// RecordGenerated implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerated() {
	b.GeneratedCount.Add(1)
}

// RecordForwarded implements MetricsCollector.
func (b *BasicMetricsCollector) RecordForwarded() {
	b.ForwardedCount.Add(1)
}

// RecordCommit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCommit() {
	b.CommitCount.Add(1)
}

// RecordStale implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStale() {
	b.StaleCount.Add(1)
}

// RecordThroughput implements MetricsCollector.
func (b *BasicMetricsCollector) RecordThroughput(perSec float64) {
	b.lastRate.Store(floatBits(perSec))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GeneratedCount: b.GeneratedCount.Load(),
		ForwardedCount: b.ForwardedCount.Load(),
		CommitCount:    b.CommitCount.Load(),
		StaleCount:     b.StaleCount.Load(),
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		LastRatePerSec: floatFromBits(b.lastRate.Load()),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GeneratedCount int64
	ForwardedCount int64
	CommitCount    int64
	StaleCount     int64
	RunCount       int64
	RunErrors      int64
	LastRatePerSec float64
}

func floatBits(f float64) uint64     { return math.Float64bits(f) }
func floatFromBits(b uint64) float64 { return math.Float64frombits(b) }

// engineObserver adapts a MetricsCollector to the engine.Observer interface.
type engineObserver struct {
	mc MetricsCollector
}

func (o engineObserver) ObserveGenerated()                { o.mc.RecordGenerated() }
func (o engineObserver) ObserveForwarded()                { o.mc.RecordForwarded() }
func (o engineObserver) ObserveCommit()                   { o.mc.RecordCommit() }
func (o engineObserver) ObserveStale()                    { o.mc.RecordStale() }
func (o engineObserver) ObserveThroughput(perSec float64) { o.mc.RecordThroughput(perSec) }
