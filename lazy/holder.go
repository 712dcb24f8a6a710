package lazy

import (
	"sync"
	"sync/atomic"
	"time"
)

// holderCell is the nested container: its once runs the constructor exactly
// one time and every field below is written inside once.Do, so any goroutine
// returning from Do observes them fully.
type holderCell[T any] struct {
	once   sync.Once
	inst   *T
	took   time.Duration
	err    error
	poison *PoisonedError
}

// holder delegates one-time initialization to a holderCell. The only
// bookkeeping outside sync.Once is replacing a cell whose constructor
// returned an error or never returned, so the next Get can retry with a
// fresh once.
type holder[T any] struct {
	base[T]
	cell atomic.Pointer[holderCell[T]]
}

// NewHolder returns the recommended lazy Instance. Panics if ctor is nil.
func NewHolder[T any](ctor Constructor[T], opts ...Option) Instance[T] {
	h := &holder[T]{}
	h.init(Holder, ctor, opts)
	h.cell.Store(new(holderCell[T]))
	return h
}

// Get implements Instance.
func (h *holder[T]) Get() (*T, error) {
	var fresh *PoisonedError
	defer func() {
		if fresh != nil {
			h.miss()
			h.poisoned(fresh)
		}
	}()

	for {
		c := h.cell.Load()

		ran := false
		c.once.Do(func() {
			ran = true
			c.inst, c.took, c.err = h.guarded(&c.poison, &fresh)
		})
		if ran {
			h.miss()
		}

		switch {
		case c.poison != nil:
			// a panicked once never reruns; the cell is kept, so this is permanent.
			return nil, c.poison
		case c.err != nil:
			if ran {
				h.record(c.took, c.err)
				h.cell.CompareAndSwap(c, new(holderCell[T]))
			}
			return nil, c.err
		case c.inst == nil:
			// once is done but the constructor never returned: it called
			// runtime.Goexit. Leave the slot absent and start over.
			h.cell.CompareAndSwap(c, new(holderCell[T]))
			continue
		}

		if ran {
			h.record(c.took, nil)
		} else {
			h.hit()
		}
		return c.inst, nil
	}
}
