package lazy

import (
	"time"

	"go.uber.org/zap"
)

// Metrics exposes instance-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// Hit is called when Get returns an already-published instance.
	Hit(s Strategy)
	// Miss is called when Get observes an absent slot and enters the
	// construction path (it may still end up as a hit after the double check).
	Miss(s Strategy)
	// Construct is called after every constructor run, successful or not.
	Construct(s Strategy, took time.Duration, err error)
	// Poison is called once when a constructor panic poisons the instance.
	Poison(s Strategy)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures an Instance. Zero values are safe;
// defaults are applied by the strategy constructors:
//   - nil Metrics => NoopMetrics
//   - nil Logger  => zap.NewNop()
//   - nil Clock   => time.Now()
type Options struct {
	// Metrics receives Hit/Miss/Construct/Poison signals.
	Metrics Metrics

	// Logger receives construction outcomes: Debug on success, Warn on
	// constructor error, Error on poisoning.
	Logger *zap.Logger

	// Clock times constructor runs. Nil => time.Now().
	Clock Clock
}

// Option mutates Options.
type Option func(*Options)

// WithMetrics plugs an observability backend (see metrics/prom, metrics/otelmetric).
func WithMetrics(m Metrics) Option { return func(o *Options) { o.Metrics = m } }

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithClock overrides the time source.
func WithClock(c Clock) Option { return func(o *Options) { o.Clock = c } }

func buildOptions(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

func (o *Options) now() int64 {
	if o.Clock != nil {
		return o.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}
