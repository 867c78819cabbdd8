package middleware

import (
	"sync"

	"github.com/akolanti/StudyRAG/internal/config"
	"golang.org/x/time/rate"
)

// built on first use so RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST from config.Load apply
var (
	limiterMu       sync.Mutex
	limiterInstance *IPRateLimiter
)

// IPRateLimiter hands out one token bucket per client ip.
type IPRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	perSec  rate.Limit
	burst   int
}

func NewIPRateLimiter(perSecond rate.Limit, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{buckets: make(map[string]*rate.Limiter), perSec: perSecond, burst: burst}
}

func currentLimiter() *IPRateLimiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	if limiterInstance == nil {
		limiterInstance = NewIPRateLimiter(rate.Limit(config.RateLimitPerSecond), config.RateLimitBurst)
	}
	return limiterInstance
}

// Allow spends one token from the bucket of ip.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.GetLimiter(ip).Allow()
}

func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = rate.NewLimiter(l.perSec, l.burst)
		l.buckets[ip] = bucket
	}
	return bucket
}

//TODO: offload the per-ip limiters to redis once more than one instance serves traffic
