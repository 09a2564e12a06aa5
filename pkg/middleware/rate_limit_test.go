package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"retreat/pkg/logger"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, nil, logger.Nop())
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other clients have their own bucket")
	}
	if !rl.Allow("") {
		t.Error("requests without a key are not limited")
	}
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond, nil, logger.Nop())
	defer rl.Stop()

	if !rl.Allow("k") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("k") {
		t.Fatal("second request should be limited")
	}
	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("k") {
		t.Error("request after the window should pass")
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil, logger.Nop())
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
		req.RemoteAddr = "192.0.2.7:51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestClientIPExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:51234"
	if got := ClientIPExtractor(req); got != "192.0.2.7" {
		t.Errorf("got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIPExtractor(req); got != "203.0.113.9" {
		t.Errorf("got %q", got)
	}
}
