package lazy

// eager holds an instance built before the Instance was handed out.
// inst is written once in NewEager and only read afterwards; publication to
// other goroutines rides on whatever hands them the Instance.
type eager[T any] struct {
	base[T]
	inst *T
}

// NewEager constructs the instance immediately. A constructor error is
// returned here as *ConstructionError, never deferred to Get.
// Panics if ctor is nil; a constructor panic propagates to the caller.
func NewEager[T any](ctor Constructor[T], opts ...Option) (Instance[T], error) {
	e := &eager[T]{}
	e.init(Eager, ctor, opts)

	p, took, err := e.construct()
	e.record(took, err)
	if err != nil {
		return nil, err
	}
	e.inst = p
	return e, nil
}

// Get implements Instance. It never blocks and never fails.
func (e *eager[T]) Get() (*T, error) {
	e.hit()
	return e.inst, nil
}
