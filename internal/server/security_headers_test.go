package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "Blocks MIME Sniffing",
			header: HeaderContentType,
			want:   HeaderValueNoSniff,
		},
		{
			name:   "Denies Cross Origin Framing",
			header: HeaderFrameOptions,
			want:   HeaderValueSameOrigin,
		},
		{
			name:   "Enables Legacy XSS Filter",
			header: HeaderXSSProtection,
			want:   HeaderValueXSSBlock,
		},
		{
			name:   "Restricts Referrer",
			header: HeaderReferrerPolicy,
			want:   HeaderValueReferrerStrictOrigin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/wallet", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get(tt.header); got != tt.want {
				t.Errorf("expected %s=%q, got %q", tt.header, tt.want, got)
			}
		})
	}
}

func TestSecurityHeadersMiddleware_SetOnErrorResponses(t *testing.T) {
	// Headers must be present even when the handler rejects the request,
	// since error bodies are just as visible to browsers.
	handler := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	req := httptest.NewRequest("GET", "/api/v1/wallet", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	for _, h := range securityHeaders {
		if got := rec.Header().Get(h.name); got != h.value {
			t.Errorf("expected %s=%q on error response, got %q", h.name, h.value, got)
		}
	}
}
