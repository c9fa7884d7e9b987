// Package space provides index sources for the search engine.
//
// An index source partitions or randomizes the search-index space across
// workers so that no two workers are bound to the same indexes. The engine
// requires unbiased coverage, not global exhaustiveness; Random is the usual
// choice for effectively-infinite spaces, Strided for deterministic striping
// and Bounded for finite spaces that should terminate the run on exhaustion.
package space

import (
	crand "crypto/rand"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// RandomSource draws uniformly random indexes, one generator per worker so
// that workers never contend when the source is sized to the pool. Worker ids
// beyond the configured size wrap onto existing generators, whose per-slot
// lock then serializes the shared draws.
type RandomSource struct {
	rngs []*lockedRand
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Random creates a RandomSource for the given number of workers.
// If workers <= 0, runtime.GOMAXPROCS(0) is used. Each worker's generator is
// seeded from crypto/rand.
func Random(workers int) *RandomSource {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rngs := make([]*lockedRand, workers)
	for i := range rngs {
		var seed [32]byte
		if _, err := crand.Read(seed[:]); err != nil {
			// crypto/rand never fails on supported platforms; fall back to
			// a distinct constant-derived seed rather than aborting.
			seed[0] = byte(i)
		}
		rngs[i] = &lockedRand{rng: rand.New(rand.NewChaCha8(seed))}
	}

	return &RandomSource{rngs: rngs}
}

// Next returns a random index. It never exhausts.
func (s *RandomSource) Next(worker int) (uint64, bool) {
	r := s.rngs[worker%len(s.rngs)]
	r.mu.Lock()
	v := r.rng.Uint64()
	r.mu.Unlock()
	return v, true
}

// StridedSource assigns worker w the arithmetic progression
// w, w+N, w+2N, ... for N workers. Deterministic and overlap-free.
type StridedSource struct {
	workers uint64
	next    []atomic.Uint64
}

// Strided creates a StridedSource for the given number of workers.
// If workers <= 0, runtime.GOMAXPROCS(0) is used.
func Strided(workers int) *StridedSource {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &StridedSource{
		workers: uint64(workers),
		next:    make([]atomic.Uint64, workers),
	}
}

// Next returns the worker's next stride index. It never exhausts (the
// progression wraps around on uint64 overflow).
func (s *StridedSource) Next(worker int) (uint64, bool) {
	w := uint64(worker) % s.workers
	step := s.next[w].Add(1) - 1
	return w + s.workers*step, true
}

// BoundedSource covers the finite space [0, n) exactly once and reports
// exhaustion, which ends the run naturally. Handed-out indexes are tracked in
// a roaring bitmap so callers can inspect coverage.
type BoundedSource struct {
	n      uint64
	cursor atomic.Uint64

	mu      sync.Mutex
	visited *roaring64.Bitmap
}

// Bounded creates a BoundedSource over [0, n).
func Bounded(n uint64) *BoundedSource {
	return &BoundedSource{
		n:       n,
		visited: roaring64.New(),
	}
}

// Next returns the next unvisited index, or false once the space is
// exhausted.
func (s *BoundedSource) Next(worker int) (uint64, bool) {
	idx := s.cursor.Add(1) - 1
	if idx >= s.n {
		return 0, false
	}

	s.mu.Lock()
	s.visited.Add(idx)
	s.mu.Unlock()

	return idx, true
}

// Visited reports whether idx has been handed out.
func (s *BoundedSource) Visited(idx uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited.Contains(idx)
}

// Coverage returns the fraction of the space handed out so far, in [0, 1].
func (s *BoundedSource) Coverage() float64 {
	if s.n == 0 {
		return 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.visited.GetCardinality()) / float64(s.n)
}
