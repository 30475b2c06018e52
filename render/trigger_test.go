package render

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTriggerCoalescesRapidInvalidations(t *testing.T) {
	var runs int32
	tr := NewTrigger(10*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })
	defer tr.Stop()

	for i := 0; i < 50; i++ {
		tr.Invalidate()
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("50 rapid invalidations ran %d times, want 1", got)
	}
}

func TestTriggerTrailingInvalidationAlwaysRuns(t *testing.T) {
	var runs int32
	tr := NewTrigger(5*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })
	defer tr.Stop()

	tr.Invalidate()
	time.Sleep(30 * time.Millisecond)
	tr.Invalidate()
	time.Sleep(30 * time.Millisecond)

	if got := atomic.LoadInt32(&runs); got != 2 {
		t.Errorf("two separated invalidations ran %d times, want 2", got)
	}
}

func TestTriggerFlush(t *testing.T) {
	done := make(chan struct{}, 1)
	tr := NewTrigger(time.Hour, func() { done <- struct{}{} })
	defer tr.Stop()

	tr.Invalidate()
	tr.Flush()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Flush did not run the pending pass")
	}

	// nothing pending: Flush must not run again
	tr.Flush()
	select {
	case <-done:
		t.Fatal("Flush ran without a pending invalidation")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestTriggerStopDiscardsPending(t *testing.T) {
	var runs int32
	tr := NewTrigger(5*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })

	tr.Invalidate()
	tr.Stop()
	time.Sleep(30 * time.Millisecond)

	if got := atomic.LoadInt32(&runs); got != 0 {
		t.Errorf("stopped trigger still ran %d times", got)
	}

	tr.Invalidate()
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 0 {
		t.Errorf("invalidation after Stop ran %d times", got)
	}
}
