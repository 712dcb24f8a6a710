package lazy

import "sync/atomic"

// unsynchronized is the check-then-act lazy slot with no mutual exclusion.
//
// Concurrent first calls can all observe an empty slot, each construct, and
// each store; the last store wins and earlier callers keep abandoned
// instances. That outcome is the point of this strategy, so there is no
// compare-and-swap here. The slot is still an atomic pointer: the logical
// race stays, but a reader can never see a torn pointer or a half-built T.
type unsynchronized[T any] struct {
	base[T]
	slot atomic.Pointer[T]
}

// NewUnsynchronized returns an Instance that is only correct under
// single-goroutine access. Panics if ctor is nil.
func NewUnsynchronized[T any](ctor Constructor[T], opts ...Option) Instance[T] {
	u := &unsynchronized[T]{}
	u.init(Unsynchronized, ctor, opts)
	return u
}

// Get implements Instance.
func (u *unsynchronized[T]) Get() (*T, error) {
	if p := u.slot.Load(); p != nil {
		u.hit()
		return p, nil
	}
	u.miss()

	// race window: another goroutine may be constructing right now.
	p, took, err := u.construct()
	u.record(took, err)
	if err != nil {
		return nil, err
	}
	u.slot.Store(p)
	return p, nil
}
