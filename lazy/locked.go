package lazy

import (
	"sync"
	"time"
)

// locked serializes every Get behind mu, including calls long after the
// instance exists. Correct, and slow under read contention: every reader
// queues on the same mutex forever.
type locked[T any] struct {
	base[T]

	// ---- guarded by mu ----
	mu     sync.Mutex
	inst   *T
	poison *PoisonedError
}

// NewLocked returns a mutex-guarded lazy Instance. Panics if ctor is nil.
func NewLocked[T any](ctor Constructor[T], opts ...Option) Instance[T] {
	l := &locked[T]{}
	l.init(Locked, ctor, opts)
	return l
}

// Get implements Instance. Counters, metrics and logs are updated after mu
// is released, so a Metrics implementation may call back into Get.
func (l *locked[T]) Get() (*T, error) {
	var fresh *PoisonedError
	defer func() {
		if fresh != nil {
			l.miss()
			l.poisoned(fresh)
		}
	}()

	p, ran, took, err := l.acquire(&fresh)
	switch {
	case ran:
		l.miss()
		l.record(took, err)
	case err == nil:
		l.hit()
	}
	return p, err
}

// acquire is the check-construct-publish sequence under mu. ran reports
// whether this call executed the constructor.
func (l *locked[T]) acquire(fresh **PoisonedError) (p *T, ran bool, took time.Duration, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.poison != nil {
		return nil, false, 0, l.poison
	}
	if l.inst != nil {
		return l.inst, false, 0, nil
	}

	p, took, err = l.guarded(&l.poison, fresh)
	if err != nil {
		return nil, true, took, err
	}
	l.inst = p
	return p, true, took, nil
}
