package engine

import "sync/atomic"

// Best is the shared best-candidate cell.
//
// It follows a copy-on-write discipline: commits swap in a pointer to an
// immutable value, so readers observe either the previous or the new best in
// full, never a partial update. Reads are lock-free and never block the
// writer; the arbiter is the only committer.
type Best[T any] struct {
	p atomic.Pointer[T]
}

// Load returns a copy of the current best and true, or the zero value and
// false if nothing has been committed yet.
func (b *Best[T]) Load() (T, bool) {
	if p := b.p.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Snapshot returns a pointer to the current best, or nil if nothing has been
// committed yet. The pointee is immutable; callers must not modify it.
//
// This is the form the Comparator consumes, avoiding a copy on the hot path.
func (b *Best[T]) Snapshot() *T {
	return b.p.Load()
}

// commit publishes c as the new best. Only the arbiter calls this; the value
// is copied so later mutation of the caller's variable cannot alter the
// published snapshot.
func (b *Best[T]) commit(c T) {
	b.p.Store(&c)
}
