package lazy

import (
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/lazyinit/internal/util"
)

// Stats is a point-in-time snapshot of an instance's counters.
type Stats struct {
	// Constructions counts constructor runs that produced an instance.
	Constructions int64
	// Failures counts constructor runs that returned an error.
	Failures int64
	// Hits counts Get calls served by an already-published instance.
	Hits int64
	// Misses counts Get calls that found the slot absent.
	Misses int64
}

// base carries what every strategy shares: the constructor, options and
// counters. It never touches the slot itself; each strategy owns its slot
// and its synchronization.
type base[T any] struct {
	strategy Strategy
	ctor     Constructor[T]
	opt      Options
	log      *zap.Logger

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_             util.CacheLinePad
	hits          util.PaddedAtomicInt64
	misses        util.PaddedAtomicInt64
	constructions util.PaddedAtomicInt64
	failures      util.PaddedAtomicInt64
}

func (b *base[T]) init(s Strategy, ctor Constructor[T], opts []Option) {
	if ctor == nil {
		panic("lazy: Constructor must not be nil")
	}
	b.strategy = s
	b.ctor = ctor
	b.opt = buildOptions(opts)
	b.log = b.opt.Logger.With(zap.Stringer("strategy", s))
}

// Strategy implements Instance.
func (b *base[T]) Strategy() Strategy { return b.strategy }

// Stats implements Instance.
func (b *base[T]) Stats() Stats {
	return Stats{
		Constructions: b.constructions.Load(),
		Failures:      b.failures.Load(),
		Hits:          b.hits.Load(),
		Misses:        b.misses.Load(),
	}
}

func (b *base[T]) hit() {
	b.hits.Add(1)
	b.opt.Metrics.Hit(b.strategy)
}

func (b *base[T]) miss() {
	b.misses.Add(1)
	b.opt.Metrics.Miss(b.strategy)
}

// construct runs the constructor once and normalizes its result.
// A constructor panic propagates to the caller untouched.
func (b *base[T]) construct() (*T, time.Duration, error) {
	start := b.opt.now()
	p, err := b.ctor()
	took := time.Duration(b.opt.now() - start)
	p, err = wrapConstruct(b.strategy, p, err)
	return p, took, err
}

// guarded is construct for callers holding exclusive access. If the
// constructor panics, *poison and *fresh are set before the panic is
// re-raised, so every later caller that acquires the same access sees the
// poisoned state. Reporting is left to poisoned, which the caller runs once
// its lock or once has been released.
func (b *base[T]) guarded(poison, fresh **PoisonedError) (p *T, took time.Duration, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		pe := &PoisonedError{Strategy: b.strategy, Value: r, Stack: string(debug.Stack())}
		*poison, *fresh = pe, pe
		panic(r)
	}()
	return b.construct()
}

// poisoned reports a constructor panic to the metrics and log. Deferred by
// Get before it takes the lock, so it runs after the unlock while the panic
// unwinds.
func (b *base[T]) poisoned(pe *PoisonedError) {
	b.opt.Metrics.Poison(b.strategy)
	b.log.Error("constructor panicked, instance poisoned", zap.Any("panic", pe.Value))
}

// record reports a finished constructor run to the counters, metrics and log.
// Callers invoke it outside their lock.
func (b *base[T]) record(took time.Duration, err error) {
	b.opt.Metrics.Construct(b.strategy, took, err)
	if err != nil {
		b.failures.Add(1)
		b.log.Warn("construction failed", zap.Duration("took", took), zap.Error(err))
		return
	}
	b.constructions.Add(1)
	b.log.Debug("instance constructed", zap.Duration("took", took))
}
