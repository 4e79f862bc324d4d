package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Buckets idle long
// enough to have refilled completely are dropped.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	interval  time.Duration
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests per client per minute.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	interval := time.Minute / time.Duration(perMinute)
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		interval: interval,
		burst:    perMinute,
		idleTTL:  interval * time.Duration(perMinute),
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(rl.interval), rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// sweep runs at most once per idle period. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleTTL {
		return
	}
	rl.lastSweep = now
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
}

// clients reports how many client buckets are currently tracked.
func (rl *RateLimiter) clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// RateLimit answers 429 once a client exceeds its budget. The client is
// identified by c.ClientIP, so the engine's trusted proxies decide whether
// X-Forwarded-For is honoured.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(math.Ceil(rl.interval.Seconds())))
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
