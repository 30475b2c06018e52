package render

import (
	"sync"
	"time"
)

// Trigger coalesces composite requests. Rapid successive invalidations are
// debounced into one pass, but the trailing invalidation always runs: no
// change is silently dropped.
type Trigger struct {
	mu      sync.Mutex
	delay   time.Duration
	run     func()
	timer   *time.Timer
	pending bool
	stopped bool
}

// NewTrigger creates a trigger that runs fn at most once per delay window.
// A zero delay still defers execution to a separate goroutine, which keeps
// the caller free of re-entrancy.
func NewTrigger(delay time.Duration, fn func()) *Trigger {
	return &Trigger{delay: delay, run: fn}
}

// Invalidate schedules a composite pass. Multiple calls within the debounce
// window collapse into a single execution reflecting the final state.
func (t *Trigger) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending = true
	if t.timer != nil {
		t.timer.Reset(t.delay)
		return
	}
	t.timer = time.AfterFunc(t.delay, t.fire)
}

func (t *Trigger) fire() {
	t.mu.Lock()
	if t.stopped || !t.pending {
		t.mu.Unlock()
		return
	}
	t.pending = false
	t.timer = nil
	t.mu.Unlock()

	t.run()
}

// Flush runs any pending pass immediately. Used on explicit save/export
// paths where the caller needs the terminal state now.
func (t *Trigger) Flush() {
	t.mu.Lock()
	if t.stopped || !t.pending {
		t.mu.Unlock()
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
	t.mu.Unlock()

	t.run()
}

// Stop discards pending work. Further invalidations are ignored.
func (t *Trigger) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.pending = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
