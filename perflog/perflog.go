// Package perflog implements the histogram-plus-running-statistics
// performance logger from spec §4.10: per-identifier time samples bucketed
// into a fixed-width histogram, plus Welford online mean/variance. All
// operations are thread-safe and the logger may be disabled at runtime;
// this component sits outside the render critical path. No ecosystem
// metrics/histogram library appears in the pack for this narrow a concern
// (see DESIGN.md) — implemented on stdlib sync/sync/atomic only.
package perflog

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBucketCount and DefaultBucketWidth match spec §4.10's "default
// 100 buckets x 5 ms".
const (
	DefaultBucketCount = 100
	DefaultBucketWidth = 5 * time.Millisecond
)

// stats is one identifier's histogram plus Welford accumulator.
type stats struct {
	mu          sync.Mutex
	buckets     []uint64
	overflow    uint64
	count       uint64
	mean        float64
	m2          float64 // sum of squared deviations from the mean
	bucketWidth time.Duration
}

func newStats(bucketCount int, bucketWidth time.Duration) *stats {
	return &stats{buckets: make([]uint64, bucketCount), bucketWidth: bucketWidth}
}

func (s *stats) record(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(d / s.bucketWidth)
	if idx >= len(s.buckets) {
		s.overflow++
	} else if idx >= 0 {
		s.buckets[idx]++
	}

	// Welford's online algorithm.
	s.count++
	x := float64(d)
	delta := x - s.mean
	s.mean += delta / float64(s.count)
	delta2 := x - s.mean
	s.m2 += delta * delta2
}

// Snapshot is a point-in-time read of one identifier's accumulated stats.
type Snapshot struct {
	Count    uint64
	Mean     time.Duration
	Variance float64 // variance of sample durations, in (time.Duration)^2 units
	Buckets  []uint64
	Overflow uint64
}

func (s *stats) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	variance := 0.0
	if s.count > 1 {
		variance = s.m2 / float64(s.count-1)
	}
	buckets := make([]uint64, len(s.buckets))
	copy(buckets, s.buckets)
	return Snapshot{
		Count:    s.count,
		Mean:     time.Duration(s.mean),
		Variance: variance,
		Buckets:  buckets,
		Overflow: s.overflow,
	}
}

// Logger records timing samples per string identifier. Safe for concurrent
// use from any number of goroutines.
type Logger struct {
	enabled     atomic.Bool
	bucketCount int
	bucketWidth time.Duration

	mu   sync.RWMutex
	byID map[string]*stats
}

// NewLogger returns an enabled Logger with the given histogram shape
// (DefaultBucketCount/DefaultBucketWidth if either is zero).
func NewLogger(bucketCount int, bucketWidth time.Duration) *Logger {
	if bucketCount <= 0 {
		bucketCount = DefaultBucketCount
	}
	if bucketWidth <= 0 {
		bucketWidth = DefaultBucketWidth
	}
	l := &Logger{bucketCount: bucketCount, bucketWidth: bucketWidth, byID: make(map[string]*stats)}
	l.enabled.Store(true)
	return l
}

// SetEnabled toggles whether Record does any work. Disabling is cheap (one
// atomic load per call) and never drops previously recorded data.
func (l *Logger) SetEnabled(enabled bool) { l.enabled.Store(enabled) }

// Enabled reports the current enabled state.
func (l *Logger) Enabled() bool { return l.enabled.Load() }

func (l *Logger) statsFor(id string) *stats {
	l.mu.RLock()
	s, ok := l.byID[id]
	l.mu.RUnlock()
	if ok {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.byID[id]; ok {
		return s
	}
	s = newStats(l.bucketCount, l.bucketWidth)
	l.byID[id] = s
	return s
}

// Record adds one timing sample for id. A no-op when the logger is disabled.
func (l *Logger) Record(id string, d time.Duration) {
	if !l.enabled.Load() {
		return
	}
	l.statsFor(id).record(d)
}

// Time is a convenience wrapper: call the returned func when the timed
// operation completes to record its elapsed duration under id.
func (l *Logger) Time(id string) func() {
	if !l.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { l.Record(id, time.Since(start)) }
}

// Snapshot returns a copy of id's accumulated stats, or the zero Snapshot
// if id has never been recorded.
func (l *Logger) Snapshot(id string) Snapshot {
	l.mu.RLock()
	s, ok := l.byID[id]
	l.mu.RUnlock()
	if !ok {
		return Snapshot{}
	}
	return s.snapshot()
}

// IDs returns every identifier recorded so far, in no particular order.
func (l *Logger) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.byID))
	for id := range l.byID {
		out = append(out, id)
	}
	return out
}
