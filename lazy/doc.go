// Package lazy provides construct-once, share-forever access to a single
// expensive resource, with five interchangeable initialization strategies
// whose correctness and cost trade-offs can be compared side by side.
//
// Design
//
//   - Contract: every strategy implements Instance[T]. Get returns the one
//     shared *T (constructing it on first use for the lazy strategies) and
//     never returns (nil, nil).
//
//   - Unsynchronized: check-then-store with no mutual exclusion. Correct for a
//     single goroutine only; concurrent first calls may construct several
//     instances and the last store wins. Kept deliberately racy as a baseline.
//
//   - Eager: the instance is built inside NewEager. Construction errors surface
//     there, before any Get is possible. Costs construction even if unused.
//
//   - Locked: one sync.Mutex around the whole of Get. Exactly one construction,
//     but every call, hits included, is serialized.
//
//   - DoubleChecked: lock-free atomic load on the fast path; mutex plus a second
//     check on the slow path. Publication is an atomic store of the pointer,
//     which pairs with the fast-path load so readers never see a partially
//     initialized T.
//
//   - Holder: a nested cell whose sync.Once runs the constructor. No
//     hand-written fast/slow path. This is the recommended default (Default).
//
//   - Errors: a constructor error comes back as *ConstructionError
//     (errors.Is(err, ErrConstructionFailed)) and leaves the slot absent, so a
//     later Get retries. A constructor panic under Locked, DoubleChecked or
//     Holder is re-raised to the goroutine that triggered it and poisons the
//     instance: every later Get returns *PoisonedError (errors.Is(err,
//     ErrPoisoned)).
//
//   - Metrics: Options.Metrics receives Hit/Miss/Construct/Poison signals.
//     By default NoopMetrics is used; see metrics/prom and metrics/otelmetric.
//
//   - Logging: Options.Logger (zap) receives construction outcomes. Defaults
//     to a no-op logger.
//
// Basic usage
//
//	var db = lazy.NewHolder(func() (*sql.DB, error) {
//	    return sql.Open("postgres", dsn)
//	})
//
//	func handler() error {
//	    conn, err := db.Get()
//	    if err != nil {
//	        return err
//	    }
//	    _ = conn // use shared instance
//	    return nil
//	}
//
// Choosing a strategy at runtime
//
//	s, err := lazy.ParseStrategy("dcl")
//	inst, err := lazy.New(s, newClient, lazy.WithLogger(logger))
//
// Exporting metrics (Prometheus adapter)
//
//	m := prom.New(nil, "lazyinit", "demo", nil) // implements Metrics
//	inst := lazy.NewDoubleChecked(newClient, lazy.WithMetrics(m))
//
// Thread-safety & cost
//
// Eager, Locked, DoubleChecked and Holder are safe for concurrent use and
// construct at most one instance. After publication, Eager, DoubleChecked and
// Holder serve Get with one atomic load (plus counter updates); Locked pays a
// mutex round-trip on every call.
package lazy
