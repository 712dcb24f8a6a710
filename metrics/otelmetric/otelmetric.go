// Package otelmetric exports lazy.Metrics signals through OpenTelemetry.
//
// The adapter uses the global meter provider unless a meter is supplied.
// Configure the provider before calling New:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
package otelmetric

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/IvanBrykalov/lazyinit/lazy"
)

// ScopeName is the instrumentation scope used with the global provider.
const ScopeName = "github.com/IvanBrykalov/lazyinit"

// Adapter implements lazy.Metrics with OpenTelemetry instruments.
type Adapter struct {
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	constructions metric.Int64Counter
	latency       metric.Float64Histogram
	poisoned      metric.Int64Counter
}

// New creates the instruments on meter (nil => otel.Meter(ScopeName)).
func New(meter metric.Meter) (*Adapter, error) {
	if meter == nil {
		meter = otel.Meter(ScopeName)
	}

	hits, err := meter.Int64Counter("lazyinit.get.hits",
		metric.WithDescription("Get calls served by an already-published instance"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter("lazyinit.get.misses",
		metric.WithDescription("Get calls that found the slot absent"),
	)
	if err != nil {
		return nil, err
	}

	constructions, err := meter.Int64Counter("lazyinit.constructions",
		metric.WithDescription("Constructor runs by result"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("lazyinit.construction.latency_ms",
		metric.WithDescription("Constructor run time in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	poisoned, err := meter.Int64Counter("lazyinit.poisoned",
		metric.WithDescription("Instances poisoned by a constructor panic"),
	)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		hits:          hits,
		misses:        misses,
		constructions: constructions,
		latency:       latency,
		poisoned:      poisoned,
	}, nil
}

func strategyAttr(s lazy.Strategy) attribute.KeyValue {
	return attribute.String("strategy", s.String())
}

// Hit implements lazy.Metrics.
func (a *Adapter) Hit(s lazy.Strategy) {
	a.hits.Add(context.Background(), 1, metric.WithAttributes(strategyAttr(s)))
}

// Miss implements lazy.Metrics.
func (a *Adapter) Miss(s lazy.Strategy) {
	a.misses.Add(context.Background(), 1, metric.WithAttributes(strategyAttr(s)))
}

// Construct implements lazy.Metrics.
func (a *Adapter) Construct(s lazy.Strategy, took time.Duration, err error) {
	ctx := context.Background()
	res := "ok"
	if err != nil {
		res = "error"
	}
	a.constructions.Add(ctx, 1, metric.WithAttributes(strategyAttr(s), attribute.String("result", res)))
	a.latency.Record(ctx, float64(took)/float64(time.Millisecond), metric.WithAttributes(strategyAttr(s)))
}

// Poison implements lazy.Metrics.
func (a *Adapter) Poison(s lazy.Strategy) {
	a.poisoned.Add(context.Background(), 1, metric.WithAttributes(strategyAttr(s)))
}

var _ lazy.Metrics = (*Adapter)(nil)
