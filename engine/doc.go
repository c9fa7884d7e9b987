// Package engine implements the concurrent best-candidate search core.
//
// A fixed pool of workers draws index values from an IndexSource, derives a
// candidate per index via the caller's Generator, and filters candidates
// against the currently published best using the caller's Comparator.
// Candidates that look like improvements are forwarded over a bounded channel
// to a single arbiter goroutine, which owns all writes to the shared best
// cell. The arbiter re-validates every received candidate against the current
// best before committing, so a candidate that lost a race to a better one is
// discarded rather than committed.
//
// # Coordination model
//
//   - Best is the only shared mutable state: one writer (the arbiter),
//     unboundedly many lock-free readers (the workers).
//   - The improvement channel is bounded; a slow arbiter throttles producers
//     through blocking sends rather than letting memory grow.
//   - Cancellation is cooperative: the arbiter cancels the run context when
//     the Acceptor is satisfied, and every worker observes it at its next
//     iteration boundary.
//
// The engine never interprets candidates beyond calling the supplied
// functions, so any comparably-ranked value type works.
package engine
