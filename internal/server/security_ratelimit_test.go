package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewAbuseDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	// Create a handler that always returns OK
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/api/v1/wallet", nil)
	req.RemoteAddr = ip + ":1234"

	// Simulate requests up to the limit
	// Limit is 1000
	for i := 0; i < 1000; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d failed with status %d", i, rec.Code)
		}
	}

	// Next request should be blocked
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 Too Many Requests, got %d", rec.Code)
	}

	// Verify detector state
	detector.mu.Lock()
	count := detector.requests[ip]
	detector.mu.Unlock()

	if count != 1001 {
		t.Errorf("expected count 1001, got %d", count)
	}
}

func TestSecurityLoggingMiddleware_IsolatesClients(t *testing.T) {
	detector := NewAbuseDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust one client's budget
	noisy := httptest.NewRequest("GET", "/api/v1/wallet", nil)
	noisy.RemoteAddr = "192.168.1.100:1234"
	for i := 0; i < 1001; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), noisy)
	}

	// A different client is unaffected
	quiet := httptest.NewRequest("GET", "/api/v1/wallet", nil)
	quiet.RemoteAddr = "192.168.1.101:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, quiet)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for separate client, got %d", rec.Code)
	}
}
