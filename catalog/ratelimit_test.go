package catalog

import (
	"testing"
	"time"
)

func TestWindowLimiterThreshold(t *testing.T) {
	l := NewWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("caller") {
			t.Fatalf("request %d within limit was rejected", i+1)
		}
	}
	if l.Allow("caller") {
		t.Error("request over the limit was admitted")
	}
	if l.Allow("caller") {
		t.Error("subsequent request over the limit was admitted")
	}
}

func TestWindowLimiterReset(t *testing.T) {
	l := NewWindowLimiter(1, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }

	if !l.Allow("caller") {
		t.Fatal("first request rejected")
	}
	if l.Allow("caller") {
		t.Fatal("second request within window admitted")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("caller") {
		t.Error("request after window elapsed was rejected")
	}
}

func TestWindowLimiterPerCaller(t *testing.T) {
	l := NewWindowLimiter(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first request for caller a rejected")
	}
	if !l.Allow("b") {
		t.Error("caller b was throttled by caller a's window")
	}
	if l.Allow("a") {
		t.Error("caller a admitted over its limit")
	}
}

func TestWindowLimiterRetryAfter(t *testing.T) {
	l := NewWindowLimiter(1, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }

	if got := l.RetryAfter("caller"); got != 0 {
		t.Errorf("expected 0 retry-after before any request, got %v", got)
	}

	l.Allow("caller")
	now = now.Add(20 * time.Second)
	if got := l.RetryAfter("caller"); got != 40*time.Second {
		t.Errorf("expected 40s retry-after, got %v", got)
	}

	now = now.Add(2 * time.Minute)
	if got := l.RetryAfter("caller"); got != 0 {
		t.Errorf("expected 0 retry-after past the window, got %v", got)
	}
}
