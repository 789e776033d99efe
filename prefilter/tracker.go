package prefilter

import (
	"sync/atomic"
)

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness, in checks.
	// Default: 64
	CheckInterval uint64

	// MinRejectRate is the minimum share of inputs the prefilter must
	// reject to stay enabled.
	// Default: 0.05 (5%)
	MinRejectRate float64

	// WarmupPeriod is the number of checks before effectiveness is judged.
	// Default: 256
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinRejectRate: 0.05,
		WarmupPeriod:  256,
	}
}

// Tracker wraps a Prefilter and retires it when it rarely rejects anything.
//
// A prefilter that passes almost every input only adds a scan in front of
// the automaton. After a warmup the tracker compares rejections to checks at
// fixed intervals; once the reject rate falls below the threshold the
// prefilter stays disabled and IsCandidate passes everything through.
//
// Tracker is safe for concurrent use.
type Tracker struct {
	inner  Prefilter
	config TrackerConfig

	checks     atomic.Uint64
	rejections atomic.Uint64
	disabled   atomic.Bool
}

// NewTracker creates a tracker with the default configuration.
// Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	if config.CheckInterval == 0 {
		config.CheckInterval = 1
	}
	return &Tracker{inner: inner, config: config}
}

// IsCandidate implements Prefilter. A disabled tracker reports every input
// as a candidate.
func (t *Tracker) IsCandidate(input string) bool {
	if t.disabled.Load() {
		return true
	}
	n := t.checks.Add(1)
	ok := t.inner.IsCandidate(input)
	if !ok {
		t.rejections.Add(1)
	}
	if n >= t.config.WarmupPeriod && n%t.config.CheckInterval == 0 {
		rate := float64(t.rejections.Load()) / float64(n)
		if rate < t.config.MinRejectRate {
			t.disabled.Store(true)
		}
	}
	return ok
}

// Name implements Prefilter.
func (t *Tracker) Name() string {
	return t.inner.Name()
}

// HeapBytes implements Prefilter.
func (t *Tracker) HeapBytes() int {
	return t.inner.HeapBytes()
}

// IsActive reports whether the prefilter is still consulted.
func (t *Tracker) IsActive() bool {
	return !t.disabled.Load()
}

// Stats returns the number of checks, the number of rejections and whether
// the prefilter is still active.
func (t *Tracker) Stats() (checks, rejections uint64, active bool) {
	return t.checks.Load(), t.rejections.Load(), t.IsActive()
}

// Reset clears statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.checks.Store(0)
	t.rejections.Store(0)
	t.disabled.Store(false)
}
