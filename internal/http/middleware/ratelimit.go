package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ymy1064-stack/App-backend/internal/identity"
)

// limiterEntry pairs a token bucket with its last-seen time so idle
// clients can be evicted.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client token bucket in front of the API.
// Clients are keyed the same way quotas are: explicit X-User-ID when
// present, otherwise the hashed network fingerprint, so a caller cannot
// dodge the limiter by toggling the header.
//
// This is an edge guard against bursts and scripted abuse; the daily
// feature quota is enforced separately in the service layer.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*limiterEntry

	rps   rate.Limit
	burst int

	ttl     time.Duration
	nowFn   func() time.Time
	lastGC  time.Time
	keyFunc func(*gin.Context) string
}

// NewRateLimiter builds a limiter allowing rps sustained requests with the
// given burst per client key. Idle buckets are evicted after three minutes.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     3 * time.Minute,
		nowFn:   time.Now,
		keyFunc: clientKey,
	}
}

func clientKey(c *gin.Context) string {
	return identity.Resolve(c.GetHeader("X-User-ID"), c.ClientIP(), c.Request.UserAgent())
}

// Handler returns the Gin middleware. Rejected requests get a JSON 429
// with a Retry-After hint.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(rl.keyFunc(c)) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFn()
	entry, ok := rl.clients[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[key] = entry
	}
	entry.lastSeen = now

	if now.Sub(rl.lastGC) > rl.ttl {
		rl.evictIdle(now)
		rl.lastGC = now
	}
	return entry.limiter.Allow()
}

// evictIdle drops buckets not seen within ttl. Caller holds the mutex.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for key, entry := range rl.clients {
		if now.Sub(entry.lastSeen) > rl.ttl {
			delete(rl.clients, key)
		}
	}
}
