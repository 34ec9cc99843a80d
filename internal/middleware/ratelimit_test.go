package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientRateLimiterDisabled(t *testing.T) {
	l := NewClientRateLimiter(0, 0)
	if l.Enabled() {
		t.Fatal("zero rate must disable limiting")
	}
	for i := 0; i < 100; i++ {
		if !l.Allow("198.51.100.1") {
			t.Fatalf("request %d rejected while disabled", i)
		}
	}
}

func TestClientRateLimiterPerClient(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewClientRateLimiter(1, 2)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("burst of 2 should pass")
	}
	if l.Allow("a") {
		t.Fatal("third request within the same instant should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("other clients keep their own budget")
	}

	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Fatal("a token should refill after one second")
	}
}

func TestClientRateLimiterEvictsIdle(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewClientRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(limiterIdle + time.Second)
	l.Allow("b")

	if _, ok := l.clients["a"]; ok {
		t.Fatal("idle client should be evicted")
	}
}

func TestClientRateLimiterSweepsOncePerInterval(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	now := start
	l := NewClientRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = start.Add(limiterIdle / 2)
	l.Allow("b")
	if !l.lastSweep.Equal(start) {
		t.Fatalf("no sweep expected inside the interval, last sweep %v", l.lastSweep)
	}

	now = start.Add(limiterIdle + time.Second)
	l.Allow("c")
	if _, ok := l.clients["a"]; ok {
		t.Fatal("a should be evicted by the due sweep")
	}
	if _, ok := l.clients["b"]; !ok {
		t.Fatal("b is not idle yet")
	}

	// b is now idle past limiterIdle, but the next sweep is not due
	now = start.Add(limiterIdle*8/5 + time.Second)
	l.Allow("c")
	if _, ok := l.clients["b"]; !ok {
		t.Fatal("idle clients are only dropped when a sweep is due")
	}
}

func TestClientRateLimiterHandler(t *testing.T) {
	h := NewClientRateLimiter(0.01, 1).Handler(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.RemoteAddr = "203.0.113.9:4000"
	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	req.RemoteAddr = "203.0.113.9:4001"
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the same host on a new port, got %d", second.Code)
	}
	if !strings.Contains(second.Body.String(), TooManyRequests) {
		t.Fatalf("unexpected body %q", second.Body.String())
	}
}
