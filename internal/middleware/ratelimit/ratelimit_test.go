package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, perMinute int) *Limiter {
	t.Helper()
	rl := NewLimiter(Config{RequestsPerMinute: perMinute, CleanupInterval: time.Hour})
	t.Cleanup(rl.Stop)
	return rl
}

func TestAllowWithinLimit(t *testing.T) {
	rl := newTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("request over limit allowed")
	}
}

func TestClientsAreIndependent(t *testing.T) {
	rl := newTestLimiter(t, 1)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("first client denied")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("second client throttled by first client's count")
	}
	if rl.ActiveClients() != 2 {
		t.Fatalf("ActiveClients = %d, want 2", rl.ActiveClients())
	}
}

func TestWindowReset(t *testing.T) {
	rl := newTestLimiter(t, 1)

	rl.Allow("1.2.3.4")
	if rl.Allow("1.2.3.4") {
		t.Fatal("second request in window allowed")
	}

	// Age the entry past the one-minute window.
	rl.mu.Lock()
	rl.clients["1.2.3.4"].lastRequest = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.Allow("1.2.3.4") {
		t.Fatal("request after window reset denied")
	}
}

func TestMiddlewareReturns429(t *testing.T) {
	rl := newTestLimiter(t, 1)

	handler := rl.Middleware(
		func(r *http.Request) string { return "1.2.3.4" },
		nil,
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("throttled request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
}

func TestCleanupRemovesStaleEntries(t *testing.T) {
	rl := newTestLimiter(t, 10)

	rl.Allow("1.2.3.4")
	rl.mu.Lock()
	rl.clients["1.2.3.4"].lastRequest = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.cleanupStaleEntries()
	if rl.ActiveClients() != 0 {
		t.Fatalf("ActiveClients after cleanup = %d, want 0", rl.ActiveClients())
	}
}
