// Package prom exports lazy.Metrics signals as Prometheus metrics.
package prom

import (
	"time"

	"github.com/IvanBrykalov/lazyinit/lazy"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements lazy.Metrics and exports Prometheus counters/histograms,
// all labelled by strategy.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	constructions *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	poisoned      *prometheus.CounterVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Get calls served by an already-published instance",
			ConstLabels: constLabels,
		}, []string{"strategy"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Get calls that found the slot absent",
			ConstLabels: constLabels,
		}, []string{"strategy"}),
		constructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "constructions_total",
			Help:        "Constructor runs by result",
			ConstLabels: constLabels,
		}, []string{"strategy", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "construction_seconds",
			Help:        "Constructor run time",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		}, []string{"strategy"}),
		poisoned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "poisoned_total",
			Help:        "Instances poisoned by a constructor panic",
			ConstLabels: constLabels,
		}, []string{"strategy"}),
	}
	reg.MustRegister(a.hits, a.misses, a.constructions, a.duration, a.poisoned)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit(s lazy.Strategy) { a.hits.WithLabelValues(s.String()).Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss(s lazy.Strategy) { a.misses.WithLabelValues(s.String()).Inc() }

// Construct counts a constructor run and observes its duration.
func (a *Adapter) Construct(s lazy.Strategy, took time.Duration, err error) {
	a.constructions.WithLabelValues(s.String(), result(err)).Inc()
	a.duration.WithLabelValues(s.String()).Observe(took.Seconds())
}

// Poison increments the poisoned counter.
func (a *Adapter) Poison(s lazy.Strategy) { a.poisoned.WithLabelValues(s.String()).Inc() }

// result maps a constructor outcome to a stable label value.
func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Compile-time check: ensure Adapter implements lazy.Metrics.
var _ lazy.Metrics = (*Adapter)(nil)
