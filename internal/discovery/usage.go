package discovery

import "sync"

// UsageTracker counts API calls and quota units spent within one run.
// Counters only increase. Safe for concurrent use; batch research runs
// topic pipelines in parallel against a shared tracker.
type UsageTracker struct {
	mu    sync.Mutex
	limit int
	units int
	calls int
}

// NewUsageTracker creates a tracker with the given quota ceiling.
// A non-positive limit disables the ceiling.
func NewUsageTracker(limit int) *UsageTracker {
	return &UsageTracker{limit: limit}
}

// Record adds one API call worth the given quota units.
func (t *UsageTracker) Record(units int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	t.units += units
}

// Calls returns the number of API calls recorded so far.
func (t *UsageTracker) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

// Units returns the quota units consumed so far.
func (t *UsageTracker) Units() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.units
}

// Remaining returns the quota units left under the ceiling, or -1 when
// no ceiling is configured.
func (t *UsageTracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.limit <= 0 {
		return -1
	}
	left := t.limit - t.units
	if left < 0 {
		left = 0
	}
	return left
}

// CanAfford reports whether spending the given units would stay under the
// ceiling. Lets the orchestrator stop before exhausting quota mid-batch.
func (t *UsageTracker) CanAfford(units int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.limit <= 0 {
		return true
	}
	return t.units+units <= t.limit
}
