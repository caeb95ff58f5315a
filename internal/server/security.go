package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hirelink/points/internal/logger"
)

// Abuse thresholds. The window is sized so a recruiter dashboard polling
// balances and requesting a quote per page view stays far under the budget,
// while credential scanners and resume scrapers trip it within seconds.
const (
	abuseWindow          = 5 * time.Minute
	maxRequestsPerWindow = 1000
	authFailureAlertAt   = 5
	rateAlertLogEvery    = 100
)

// walletPathPrefix marks the endpoints that move points. Auth failures
// against these are logged with an extra flag so probing for unprotected
// wallet mutations stands out from generic scanning.
const walletPathPrefix = "/api/v1/wallet"

// AbuseDetector keeps per-client counters of auth failures and request
// volume over a fixed window. Counters reset wholesale when the window
// rolls over rather than sliding, which is good enough for alerting.
type AbuseDetector struct {
	mu           sync.Mutex
	authFailures map[string]int
	requests     map[string]int
	windowStart  time.Time
}

func NewAbuseDetector() *AbuseDetector {
	return &AbuseDetector{
		authFailures: make(map[string]int),
		requests:     make(map[string]int),
		windowStart:  time.Now(),
	}
}

// RecordAuthFailure counts a failed API key check and raises a log alert
// once the client crosses the failure threshold.
func (d *AbuseDetector) RecordAuthFailure(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rotateWindow()
	d.authFailures[ip]++

	if d.authFailures[ip] >= authFailureAlertAt {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", d.authFailures[ip])
	}
}

// AllowRequest counts the request and reports whether the client is still
// within its window budget.
func (d *AbuseDetector) AllowRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rotateWindow()
	d.requests[ip]++

	if d.requests[ip] > maxRequestsPerWindow {
		// Log a sample of the overflow, not every blocked request.
		if d.requests[ip]%rateAlertLogEvery == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", d.requests[ip])
		}
		return false
	}
	return true
}

// rotateWindow clears all counters when the current window has elapsed.
// Caller must hold d.mu.
func (d *AbuseDetector) rotateWindow() {
	if time.Since(d.windowStart) > abuseWindow {
		d.authFailures = make(map[string]int)
		d.requests = make(map[string]int)
		d.windowStart = time.Now()
	}
}

// isPublicPath reports whether the path is served without an API key.
func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthMiddleware gates everything except the public paths behind the
// shared API key. The comparison is constant time so response latency
// leaks nothing about how much of a guessed key matched.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				detector.RecordAuthFailure(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"ip", ip,
					"path", r.URL.Path,
					"key_present", providedKey != "",
					"wallet_path", strings.HasPrefix(r.URL.Path, walletPathPrefix))

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityLoggingMiddleware enforces the per-client request budget.
func SecurityLoggingMiddleware(trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedProxies)

			if !detector.AllowRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies. Quote and wallet
// payloads are a few hundred bytes, so the limit mostly guards the JSON
// decoder against junk uploads.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the client address for abuse accounting. The
// X-Forwarded-For header is honored only when the direct peer is a
// configured proxy; otherwise any client could pick its own identity and
// sidestep the rate limit.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if isTrustedProxy(remoteIP, trustedProxies) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// Rightmost entry is the hop the trusted proxy actually saw.
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}

	return remoteIP
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	for _, proxy := range trustedProxies {
		if proxy == ip {
			return true
		}
	}
	return false
}

// securityHeaders are applied to every response, error paths included.
var securityHeaders = [...]struct {
	name  string
	value string
}{
	{HeaderContentType, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderXSSProtection, HeaderValueXSSBlock},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
}

// SecurityHeadersMiddleware sets the standard hardening headers before the
// handler writes anything.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range securityHeaders {
				w.Header().Set(h.name, h.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
