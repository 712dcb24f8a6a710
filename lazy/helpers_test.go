package lazy

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var errBoom = errors.New("boom")

// widget has several fields with non-default values so a reader that sees a
// partially built instance would notice.
type widget struct {
	id    int64
	value int
	name  string
	tags  []string
	ratio float64
}

func (w *widget) complete() bool {
	return w.value == 42 && w.name == "widget" && len(w.tags) == 2 && w.ratio == 0.5 && w.id > 0
}

// countingCtor returns a constructor that counts its runs and sleeps for
// delay to widen the race window.
func countingCtor(calls *atomic.Int64, delay time.Duration) Constructor[widget] {
	return func() (*widget, error) {
		n := calls.Add(1)
		if delay > 0 {
			time.Sleep(delay)
		}
		return &widget{id: n, value: 42, name: "widget", tags: []string{"a", "b"}, ratio: 0.5}, nil
	}
}

// failFirst fails the first n runs with errBoom, then succeeds.
func failFirst(n int64, calls *atomic.Int64) Constructor[widget] {
	return func() (*widget, error) {
		c := calls.Add(1)
		if c <= n {
			return nil, errBoom
		}
		return &widget{id: c, value: 42, name: "widget", tags: []string{"a", "b"}, ratio: 0.5}, nil
	}
}

// safeStrategies are the strategies that guarantee a single instance.
func safeStrategies() []Strategy {
	return []Strategy{Eager, Locked, DoubleChecked, Holder}
}

type fakeClock struct{ t atomic.Int64 }

func (f *fakeClock) NowUnixNano() int64  { return f.t.Load() }
func (f *fakeClock) add(d time.Duration) { f.t.Add(int64(d)) }

type constructEvent struct {
	s    Strategy
	took time.Duration
	err  error
}

// recordingMetrics captures every hook call for assertions.
type recordingMetrics struct {
	mu         sync.Mutex
	hits       map[Strategy]int
	misses     map[Strategy]int
	poisons    map[Strategy]int
	constructs []constructEvent
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		hits:    map[Strategy]int{},
		misses:  map[Strategy]int{},
		poisons: map[Strategy]int{},
	}
}

func (m *recordingMetrics) Hit(s Strategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits[s]++
}

func (m *recordingMetrics) Miss(s Strategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses[s]++
}

func (m *recordingMetrics) Construct(s Strategy, took time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constructs = append(m.constructs, constructEvent{s: s, took: took, err: err})
}

func (m *recordingMetrics) Poison(s Strategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poisons[s]++
}

var _ Metrics = (*recordingMetrics)(nil)

// reentrantMetrics calls Get on inst from the first hook it receives.
type reentrantMetrics struct {
	NoopMetrics
	inst  Instance[widget]
	calls atomic.Int64
	seen  chan error
}

func (m *reentrantMetrics) reenter() {
	if m.calls.Add(1) > 1 {
		return
	}
	_, err := m.inst.Get()
	m.seen <- err
}

func (m *reentrantMetrics) Hit(Strategy)                             { m.reenter() }
func (m *reentrantMetrics) Construct(Strategy, time.Duration, error) { m.reenter() }
func (m *reentrantMetrics) Poison(Strategy)                          { m.reenter() }

var _ Metrics = (*reentrantMetrics)(nil)

// catchPanic runs fn and returns the recovered panic value, if any.
func catchPanic(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}
