package search

import (
	"sync"
	"time"
)

const (
	pollLimitWindow = 1 * time.Second
	// pollPruneEvery bounds the book-keeping map. An entry older than the
	// window no longer blocks anything, so it is garbage.
	pollPruneEvery = time.Minute
)

// pollLimiter enforces a minimum interval between polls of the same task
// by the same user.
type pollLimiter struct {
	mu        sync.Mutex
	lastHit   map[string]time.Time
	lastPrune time.Time
	now       func() time.Time
	window    time.Duration
}

func newPollLimiter(window time.Duration, now func() time.Time) *pollLimiter {
	if now == nil {
		now = time.Now
	}
	if window <= 0 {
		window = pollLimitWindow
	}
	return &pollLimiter{
		lastHit: make(map[string]time.Time),
		now:     now,
		window:  window,
	}
}

func (l *pollLimiter) Allow(userID, taskID string) bool {
	if l == nil {
		return true
	}
	key := userID + "|" + taskID
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked(now)
	if last, ok := l.lastHit[key]; ok && now.Sub(last) < l.window {
		return false
	}
	l.lastHit[key] = now
	return true
}

func (l *pollLimiter) RetryAfterSeconds() int {
	if l == nil {
		return int(pollLimitWindow.Seconds())
	}
	return int(l.window.Seconds())
}

func (l *pollLimiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < pollPruneEvery {
		return
	}
	l.lastPrune = now
	for key, last := range l.lastHit {
		if now.Sub(last) >= l.window {
			delete(l.lastHit, key)
		}
	}
}
