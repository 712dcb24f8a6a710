package lazy

import (
	"sync"
	"sync/atomic"
	"time"
)

// doubleChecked takes the lock only while the slot is absent.
//
// Memory ordering: the fast path reads slot without mu, so mu alone cannot
// order the constructor's field writes before that read. slot is therefore an
// atomic.Pointer: Store happens after the constructor returns (release) and
// Load on the fast path synchronizes with it (acquire). A reader that sees a
// non-nil pointer sees every field the constructor wrote.
type doubleChecked[T any] struct {
	base[T]
	slot atomic.Pointer[T]

	// ---- guarded by mu ----
	mu     sync.Mutex
	poison *PoisonedError
}

// NewDoubleChecked returns a double-checked-locking lazy Instance.
// Panics if ctor is nil.
func NewDoubleChecked[T any](ctor Constructor[T], opts ...Option) Instance[T] {
	d := &doubleChecked[T]{}
	d.init(DoubleChecked, ctor, opts)
	return d
}

// Get implements Instance.
func (d *doubleChecked[T]) Get() (*T, error) {
	// fast path: no lock once published.
	if p := d.slot.Load(); p != nil {
		d.hit()
		return p, nil
	}
	d.miss()

	var fresh *PoisonedError
	defer func() {
		if fresh != nil {
			d.poisoned(fresh)
		}
	}()

	p, ran, took, err := d.slow(&fresh)
	if ran {
		d.record(took, err)
	} else if err == nil {
		// lost the race for the lock; someone else published meanwhile.
		d.hit()
	}
	return p, err
}

// slow is the locked check-construct-publish sequence. ran reports whether
// this call executed the constructor.
func (d *doubleChecked[T]) slow(fresh **PoisonedError) (p *T, ran bool, took time.Duration, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.poison != nil {
		return nil, false, 0, d.poison
	}
	// double check: the previous lock holder may have published.
	if cur := d.slot.Load(); cur != nil {
		return cur, false, 0, nil
	}

	p, took, err = d.guarded(&d.poison, fresh)
	if err != nil {
		return nil, true, took, err
	}
	d.slot.Store(p) // publish
	return p, true, took, nil
}
