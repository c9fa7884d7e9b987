// This file implements the fluent builder API for the built-in vanity
// address search. The builder is immutable - each method returns a new
// builder with the updated configuration.

package vanigo

import (
	"time"

	"github.com/hupe1980/vanigo/engine"
	"github.com/hupe1980/vanigo/space"
	"github.com/hupe1980/vanigo/vanity"
)

// Vanity creates a builder for a vanity address search with the desired
// prefix.
//
// Example:
//
//	v, err := vanigo.Vanity("ab").
//	    CaseSensitive().
//	    Workers(8).
//	    Monitor(time.Second).
//	    Build()
func Vanity(prefix string) VanityBuilder {
	return VanityBuilder{
		prefix:  prefix,
		network: vanity.NetworkSubstrate,
	}
}

// VanityBuilder is an immutable fluent builder for vanity address searches.
// Each method returns a new builder with the updated configuration.
type VanityBuilder struct {
	prefix          string
	caseSensitive   bool
	network         byte
	salt            []byte
	workers         int
	capacity        int
	monitorInterval time.Duration
	throttle        engine.ThrottleConfig
	logger          *Logger
	metrics         MetricsCollector
	source          engine.IndexSource
	recorder        Recorder[vanity.Candidate]
	onImprovement   func(vanity.Candidate)
}

// CaseSensitive makes the primary prefix criterion case-exact.
// Default: case-insensitive matching with a case-exact tie-break.
func (b VanityBuilder) CaseSensitive() VanityBuilder {
	b.caseSensitive = true
	return b
}

// Network sets the SS58 network identifier.
// Default: vanity.NetworkSubstrate (42).
func (b VanityBuilder) Network(network byte) VanityBuilder {
	b.network = network
	return b
}

// Salt fixes the explored key region so a run can be reproduced.
// Default: a fresh random salt per Build.
func (b VanityBuilder) Salt(salt []byte) VanityBuilder {
	b.salt = salt
	return b
}

// Workers sets the number of producer goroutines.
// Default: runtime.GOMAXPROCS(0).
func (b VanityBuilder) Workers(n int) VanityBuilder {
	b.workers = n
	return b
}

// ChannelCapacity sets the improvement channel capacity.
// Default: engine.DefaultChannelCapacity.
func (b VanityBuilder) ChannelCapacity(n int) VanityBuilder {
	b.capacity = n
	return b
}

// Monitor enables throughput monitoring with the given sampling interval.
func (b VanityBuilder) Monitor(d time.Duration) VanityBuilder {
	b.monitorInterval = d
	return b
}

// Throttle limits candidate generation; see engine.ThrottleConfig.
func (b VanityBuilder) Throttle(cfg engine.ThrottleConfig) VanityBuilder {
	b.throttle = cfg
	return b
}

// WithLogger sets the logger.
func (b VanityBuilder) WithLogger(l *Logger) VanityBuilder {
	b.logger = l
	return b
}

// WithMetrics sets the metrics collector.
func (b VanityBuilder) WithMetrics(mc MetricsCollector) VanityBuilder {
	b.metrics = mc
	return b
}

// Source overrides the index source.
// Default: space.Random sized to the worker count.
func (b VanityBuilder) Source(src engine.IndexSource) VanityBuilder {
	b.source = src
	return b
}

// Journal attaches a recorder persisting improvements and the accepted
// result.
func (b VanityBuilder) Journal(r Recorder[vanity.Candidate]) VanityBuilder {
	b.recorder = r
	return b
}

// OnImprovement registers a per-commit callback; it runs on the arbiter
// goroutine in commit order.
func (b VanityBuilder) OnImprovement(fn func(vanity.Candidate)) VanityBuilder {
	b.onImprovement = fn
	return b
}

// Build validates the configuration and assembles the search.
func (b VanityBuilder) Build() (*Vanigo[vanity.Candidate], error) {
	matcher := vanity.Matcher{
		Prefix:        b.prefix,
		CaseSensitive: b.caseSensitive,
	}
	if err := matcher.Validate(); err != nil {
		return nil, &ErrInvalidPrefix{Prefix: b.prefix, cause: err}
	}

	deriver, err := vanity.NewDeriver(b.network, b.salt)
	if err != nil {
		return nil, err
	}

	source := b.source
	if source == nil {
		source = space.Random(b.workers)
	}

	logger := b.logger
	if logger == nil {
		logger = NewLogger(nil)
	}

	optFns := []Option{
		WithWorkers(b.workers),
		WithChannelCapacity(b.capacity),
		WithThrottle(b.throttle),
		WithLogger(logger.WithPrefix(b.prefix)),
	}
	if b.monitorInterval > 0 {
		optFns = append(optFns, WithMonitorInterval(b.monitorInterval))
	}
	if b.metrics != nil {
		optFns = append(optFns, WithMetrics(b.metrics))
	}

	v, err := New(source, deriver.Generate, matcher.IsBetter, matcher.IsAcceptable, optFns...)
	if err != nil {
		return nil, err
	}

	if b.recorder != nil {
		v.SetRecorder(b.recorder)
	}
	if b.onImprovement != nil {
		v.SetOnImprovement(b.onImprovement)
	}

	return v, nil
}
