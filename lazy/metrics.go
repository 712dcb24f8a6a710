package lazy

import "time"

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit(Strategy)                             {}
func (NoopMetrics) Miss(Strategy)                            {}
func (NoopMetrics) Construct(Strategy, time.Duration, error) {}
func (NoopMetrics) Poison(Strategy)                          {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
