package lazy

import (
	"fmt"
	"strings"
)

// Strategy identifies the initialization policy that governs a slot.
type Strategy uint8

const (
	// Unsynchronized checks and fills the slot without any mutual exclusion.
	// Concurrent first calls may construct several instances; last store wins.
	Unsynchronized Strategy = iota
	// Eager constructs the instance while the Instance itself is created.
	Eager
	// Locked serializes every Get, cached hits included, behind one mutex.
	Locked
	// DoubleChecked reads the slot lock-free and locks only when it is absent.
	DoubleChecked
	// Holder delegates one-time construction to a nested sync.Once cell.
	Holder
)

// Default is the recommended strategy: the safety of DoubleChecked without
// hand-written fast/slow paths.
const Default = Holder

var strategyNames = [...]string{
	Unsynchronized: "unsynchronized",
	Eager:          "eager",
	Locked:         "locked",
	DoubleChecked:  "double-checked",
	Holder:         "holder",
}

// String returns the stable lower-case name used in logs, metric labels and
// command-line flags.
func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool { return int(s) < len(strategyNames) }

// Lazy reports whether the strategy defers construction to the first Get.
func (s Strategy) Lazy() bool { return s.Valid() && s != Eager }

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Unsynchronized, Eager, Locked, DoubleChecked, Holder}
}

// ParseStrategy maps a name (as produced by String, or the aliases "unsync"
// and "dcl") back to a Strategy. Matching ignores case and surrounding spaces.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "unsync":
		return Unsynchronized, nil
	case "dcl":
		return DoubleChecked, nil
	}
	for i, sn := range strategyNames {
		if n == sn {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// New builds an Instance governed by s. It is the selector used by tests,
// benchmarks and cmd/bench to compare strategies side by side; the
// per-strategy constructors are equivalent.
//
// The error is non-nil only for an unknown strategy or when Eager fails to
// construct.
func New[T any](s Strategy, ctor Constructor[T], opts ...Option) (Instance[T], error) {
	switch s {
	case Unsynchronized:
		return NewUnsynchronized(ctor, opts...), nil
	case Eager:
		return NewEager(ctor, opts...)
	case Locked:
		return NewLocked(ctor, opts...), nil
	case DoubleChecked:
		return NewDoubleChecked(ctor, opts...), nil
	case Holder:
		return NewHolder(ctor, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
	}
}

// MustNew is like New but panics on error. Handy for package-level vars.
func MustNew[T any](s Strategy, ctor Constructor[T], opts ...Option) Instance[T] {
	inst, err := New(s, ctor, opts...)
	if err != nil {
		panic(err)
	}
	return inst
}
