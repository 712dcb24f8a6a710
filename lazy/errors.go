package lazy

import (
	"errors"
	"fmt"
)

var (
	// ErrConstructionFailed matches every *ConstructionError via errors.Is.
	ErrConstructionFailed = errors.New("lazy: construction failed")

	// ErrNilInstance is wrapped when a constructor returns (nil, nil).
	ErrNilInstance = errors.New("lazy: constructor returned nil instance")

	// ErrPoisoned matches every *PoisonedError via errors.Is.
	ErrPoisoned = errors.New("lazy: instance poisoned")

	// ErrUnknownStrategy is returned by ParseStrategy and New.
	ErrUnknownStrategy = errors.New("lazy: unknown strategy")
)

// ConstructionError reports a constructor that returned an error. The slot is
// left absent.
type ConstructionError struct {
	// Strategy that invoked the constructor.
	Strategy Strategy
	// Err is the constructor's error (or ErrNilInstance).
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("lazy: %s: construction failed: %v", e.Strategy, e.Err)
}

// Unwrap returns the constructor's error for errors.Is/As support.
func (e *ConstructionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConstructionFailed) match.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstructionFailed }

// PoisonedError is returned by every Get after a constructor panicked while
// the strategy held exclusive access (the mutex or the holder's once).
type PoisonedError struct {
	// Strategy whose state is poisoned.
	Strategy Strategy
	// Value is the value the constructor passed to panic().
	Value any
	// Stack is the stack trace captured at the panic.
	Stack string
}

// Error implements the error interface.
func (e *PoisonedError) Error() string {
	return fmt.Sprintf("lazy: %s: poisoned by constructor panic: %v", e.Strategy, e.Value)
}

// Is lets errors.Is(err, ErrPoisoned) match.
func (e *PoisonedError) Is(target error) bool { return target == ErrPoisoned }

// wrapConstruct normalizes a constructor result into (instance, error).
func wrapConstruct[T any](s Strategy, p *T, err error) (*T, error) {
	if err != nil {
		return nil, &ConstructionError{Strategy: s, Err: err}
	}
	if p == nil {
		return nil, &ConstructionError{Strategy: s, Err: ErrNilInstance}
	}
	return p, nil
}
