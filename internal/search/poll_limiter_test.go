package search

import (
	"testing"
	"time"
)

func TestPollLimiterBlocksWithinWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := newPollLimiter(time.Second, func() time.Time { return now })

	if !limiter.Allow("user-1", "task-1") {
		t.Fatal("first poll must be allowed")
	}
	now = now.Add(300 * time.Millisecond)
	if limiter.Allow("user-1", "task-1") {
		t.Fatal("second poll inside the window must be blocked")
	}
	now = now.Add(time.Second)
	if !limiter.Allow("user-1", "task-1") {
		t.Fatal("poll after the window must be allowed")
	}
}

func TestPollLimiterIsolatesKeys(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := newPollLimiter(time.Second, func() time.Time { return now })

	if !limiter.Allow("user-1", "task-1") {
		t.Fatal("first poll must be allowed")
	}
	if !limiter.Allow("user-1", "task-2") {
		t.Fatal("different task must have its own budget")
	}
	if !limiter.Allow("user-2", "task-1") {
		t.Fatal("different user must have its own budget")
	}
}

func TestPollLimiterRetryAfter(t *testing.T) {
	limiter := newPollLimiter(2*time.Second, nil)
	if got := limiter.RetryAfterSeconds(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestPollLimiterPrunesStaleEntries(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := newPollLimiter(time.Second, func() time.Time { return now })

	limiter.Allow("user-1", "task-1")
	limiter.Allow("user-2", "task-2")

	now = now.Add(pollPruneEvery + time.Second)
	limiter.Allow("user-3", "task-3")

	limiter.mu.Lock()
	size := len(limiter.lastHit)
	limiter.mu.Unlock()
	if size != 1 {
		t.Fatalf("expected stale entries pruned down to 1, got %d", size)
	}
}
