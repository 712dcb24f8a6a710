// Command bench hammers each initialization strategy with concurrent first
// access and warm reads, and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/lazyinit/lazy"
	pmet "github.com/IvanBrykalov/lazyinit/metrics/prom"
)

// resource stands in for something expensive: a client, a pool, a parsed config.
type resource struct {
	id      int64
	payload [64]byte
}

type result struct {
	strategy  lazy.Strategy
	elapsed   time.Duration
	ops       uint64
	errs      uint64
	distinct  int
	stats     lazy.Stats
	createErr error
}

func main() {
	// ---- Flags ----
	var (
		strategy  = flag.String("strategy", "all", "strategy: unsynchronized | eager | locked | double-checked | holder | all")
		workers   = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration  = flag.Duration("duration", 2*time.Second, "run duration per strategy")
		ctorDelay = flag.Duration("ctor-delay", time.Millisecond, "simulated construction cost")
		failFirst = flag.Int64("fail-first", 0, "number of initial constructions that fail")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
		logLevel    = flag.String("log-level", "info", "log level: debug | info | warn | error")
	)
	flag.Parse()

	// ---- Logger ----
	lvl, err := zap.ParseAtomicLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -log-level: %v\n", err)
		os.Exit(2)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	strategies, err := selectStrategies(*strategy)
	if err != nil {
		logger.Fatal("bad -strategy", zap.Error(err))
	}

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof: serving", zap.String("addr", *pprofAddr))
			logger.Warn("pprof server stopped", zap.Error(http.ListenAndServe(*pprofAddr, nil)))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "lazyinit", "bench", nil)
	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics: serving", zap.String("addr", *metricsAddr))
			logger.Warn("metrics server stopped", zap.Error(http.ListenAndServe(*metricsAddr, nil)))
		}()
	}

	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	fmt.Printf("workers=%d dur=%v ctor-delay=%v fail-first=%d\n", workersN, *duration, *ctorDelay, *failFirst)
	for _, s := range strategies {
		r := run(s, workersN, *duration, *ctorDelay, *failFirst, metrics, logger)
		report(r)
	}
}

func selectStrategies(name string) ([]lazy.Strategy, error) {
	if name == "all" {
		return lazy.Strategies(), nil
	}
	s, err := lazy.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return []lazy.Strategy{s}, nil
}

// run releases all workers at once against a fresh instance, so the first
// calls race on an empty slot, then keeps them reading until the deadline.
func run(s lazy.Strategy, workers int, dur, delay time.Duration, failFirst int64,
	m lazy.Metrics, logger *zap.Logger) result {
	var ctorCalls atomic.Int64
	ctor := func() (*resource, error) {
		n := ctorCalls.Add(1)
		time.Sleep(delay)
		if n <= failFirst {
			return nil, fmt.Errorf("simulated failure %d/%d", n, failFirst)
		}
		return &resource{id: n}, nil
	}

	res := result{strategy: s}
	inst, err := lazy.New(s, ctor, lazy.WithMetrics(m), lazy.WithLogger(logger))
	// Eager fails at creation; retry like a caller would on startup.
	for err != nil && errors.Is(err, lazy.ErrConstructionFailed) {
		inst, err = lazy.New(s, ctor, lazy.WithMetrics(m), lazy.WithLogger(logger))
	}
	if err != nil {
		res.createErr = err
		return res
	}

	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()

	var (
		ops, errs atomic.Uint64
		mu        sync.Mutex
		seen      = map[*resource]struct{}{}
		start     = make(chan struct{})
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := map[*resource]struct{}{}
			<-start
			for {
				select {
				case <-ctx.Done():
					mu.Lock()
					for p := range local {
						seen[p] = struct{}{}
					}
					mu.Unlock()
					return nil
				default:
				}
				ops.Add(1)
				p, err := inst.Get()
				if err != nil {
					if errors.Is(err, lazy.ErrPoisoned) {
						return err
					}
					errs.Add(1)
					continue
				}
				local[p] = struct{}{}
			}
		})
	}

	began := time.Now()
	close(start)
	if err := g.Wait(); err != nil {
		logger.Error("worker stopped", zap.Stringer("strategy", s), zap.Error(err))
	}

	res.elapsed = time.Since(began)
	res.ops = ops.Load()
	res.errs = errs.Load()
	res.distinct = len(seen)
	res.stats = inst.Stats()
	return res
}

func report(r result) {
	if r.createErr != nil {
		fmt.Printf("strategy=%-15s create error: %v\n", r.strategy, r.createErr)
		return
	}
	fmt.Printf("strategy=%-15s ops=%d (%.0f ops/s) errors=%d distinct-instances=%d constructions=%d failures=%d hits=%d misses=%d\n",
		r.strategy, r.ops, float64(r.ops)/r.elapsed.Seconds(), r.errs, r.distinct,
		r.stats.Constructions, r.stats.Failures, r.stats.Hits, r.stats.Misses)
}
