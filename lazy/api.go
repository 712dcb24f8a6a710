package lazy

// Constructor builds the shared resource. It is called at most once per
// successful initialization (Unsynchronized may call it more than once under
// contention). Returning (nil, nil) is reported as ErrNilInstance.
type Constructor[T any] func() (*T, error)

// Instance hands out the single shared *T governed by one initialization
// strategy. All methods are safe for concurrent use by multiple goroutines;
// only Unsynchronized gives up the "one instance" guarantee when they do.
type Instance[T any] interface {
	// Get returns the shared instance, constructing it first if the slot is
	// absent. It never returns (nil, nil).
	//
	// A constructor error is returned as *ConstructionError and leaves the
	// slot absent, so a later call may retry. After a constructor panic the
	// poisonable strategies (Locked, DoubleChecked, Holder) return
	// *PoisonedError on every call.
	Get() (*T, error)

	// Strategy reports the initialization policy behind this instance.
	Strategy() Strategy

	// Stats returns a snapshot of the instance counters.
	Stats() Stats
}
