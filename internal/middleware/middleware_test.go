package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/StudyRAG/internal/config"
	"golang.org/x/time/rate"
)

func okHandler(t *testing.T, gotTrace *string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if v, ok := r.Context().Value(config.TRACE_ID_KEY).(string); ok && gotTrace != nil {
			*gotTrace = v
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestWrap_TraceId(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"generated when absent", ""},
		{"propagated when present", "trace-from-client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Trace-Id", tt.header)
			}
			rr := httptest.NewRecorder()

			Wrap(okHandler(t, &got))(rr, req)

			if got == "" {
				t.Fatal("handler saw no trace id in the context")
			}
			if tt.header != "" && got != tt.header {
				t.Errorf("trace = %q, want %q", got, tt.header)
			}
			if rr.Header().Get("X-Trace-Id") != got {
				t.Errorf("response header %q does not echo trace %q", rr.Header().Get("X-Trace-Id"), got)
			}
		})
	}
}

func TestWrap_Auth(t *testing.T) {
	previous := config.AuthToken
	config.AuthToken = "secret"
	t.Cleanup(func() { config.AuthToken = previous })

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic c2VjcmV0", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer secret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/ask", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			Wrap(okHandler(t, nil))(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestWrap_AuthDisabledWithoutToken(t *testing.T) {
	previous := config.AuthToken
	config.AuthToken = ""
	t.Cleanup(func() { config.AuthToken = previous })

	rr := httptest.NewRecorder()
	Wrap(okHandler(t, nil))(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestWrap_RateLimit(t *testing.T) {
	previousEnabled, previousLimiter := config.RateLimitEnabled, limiterInstance
	config.RateLimitEnabled = true
	limiterInstance = NewIPRateLimiter(rate.Limit(0.001), 2)
	t.Cleanup(func() {
		config.RateLimitEnabled = previousEnabled
		limiterInstance = previousLimiter
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		Wrap(okHandler(t, nil))(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	if l.GetLimiter("a") != l.GetLimiter("a") {
		t.Error("same ip got different limiters")
	}
	if l.GetLimiter("a") == l.GetLimiter("b") {
		t.Error("different ips share a limiter")
	}
}

func TestCurrentLimiter_UsesSettings(t *testing.T) {
	previousRate, previousBurst, previousLimiter := config.RateLimitPerSecond, config.RateLimitBurst, limiterInstance
	config.RateLimitPerSecond = 0.5
	config.RateLimitBurst = 3
	limiterInstance = nil
	t.Cleanup(func() {
		config.RateLimitPerSecond, config.RateLimitBurst = previousRate, previousBurst
		limiterInstance = previousLimiter
	})

	bucket := currentLimiter().GetLimiter("10.0.0.9")
	if bucket.Limit() != rate.Limit(0.5) || bucket.Burst() != 3 {
		t.Errorf("limit = %v burst = %d, want 0.5 and 3", bucket.Limit(), bucket.Burst())
	}
	if currentLimiter() != currentLimiter() {
		t.Error("limiter rebuilt between calls")
	}
}

func TestIPRateLimiter_Allow(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 0)
	if !l.Allow("a") {
		t.Error("first request denied")
	}
	if l.Allow("a") {
		t.Error("burst below one should still mean a single token")
	}
	if !l.Allow("b") {
		t.Error("other ip was throttled")
	}
}
