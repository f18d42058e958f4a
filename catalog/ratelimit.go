package catalog

import (
	"sync"
	"time"
)

// GlobalCaller is the admission key used when no per-caller identity is
// available.
const GlobalCaller = "global"

type window struct {
	count   int
	startAt time.Time
}

// WindowLimiter bounds the number of requests accepted per caller within a
// fixed window. The counter resets when the window elapses. Counting under
// concurrent access converges to roughly-correct totals; exact interleaving
// is not guaranteed and does not need to be.
type WindowLimiter struct {
	mu      sync.Mutex
	windows map[string]window
	limit   int
	span    time.Duration
	now     func() time.Time
}

func NewWindowLimiter(limit int, span time.Duration) *WindowLimiter {
	return &WindowLimiter{
		windows: make(map[string]window),
		limit:   limit,
		span:    span,
		now:     time.Now,
	}
}

// Allow records one request for the caller and reports whether it is admitted.
func (l *WindowLimiter) Allow(caller string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[caller]
	if !ok || now.Sub(w.startAt) > l.span {
		l.windows[caller] = window{count: 1, startAt: now}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	l.windows[caller] = w
	return true
}

// RetryAfter returns how long the caller has to wait until its window resets.
func (l *WindowLimiter) RetryAfter(caller string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[caller]
	if !ok {
		return 0
	}
	remaining := l.span - l.now().Sub(w.startAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
