package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultClientIdleTTL = 10 * time.Minute
	defaultMaxClients    = 10000
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Buckets idle longer than the idle
// TTL are swept, and the table never holds more than maxClients entries.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	idleTTL    time.Duration
	maxClients int
	lastSweep  time.Time
	now        func() time.Time
}

type RateLimiterOption func(*RateLimiter)

func WithIdleTTL(ttl time.Duration) RateLimiterOption {
	return func(r *RateLimiter) { r.idleTTL = ttl }
}

func WithMaxClients(n int) RateLimiterOption {
	return func(r *RateLimiter) { r.maxClients = n }
}

func WithClock(now func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) { r.now = now }
}

func NewRateLimiter(perSecond float64, burst int, opts ...RateLimiterOption) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	r := &RateLimiter{
		clients:    make(map[string]*clientLimiter),
		limit:      rate.Limit(perSecond),
		burst:      burst,
		idleTTL:    defaultClientIdleTTL,
		maxClients: defaultMaxClients,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxClients <= 0 {
		r.maxClients = defaultMaxClients
	}
	r.lastSweep = r.now()
	return r
}

// Allow spends one token from the client's bucket.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		r.sweep(now)
	}

	cl, ok := r.clients[key]
	if !ok {
		if len(r.clients) >= r.maxClients {
			r.sweep(now)
			if len(r.clients) >= r.maxClients {
				r.evictOldest()
			}
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Clients reports how many buckets are tracked.
func (r *RateLimiter) Clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *RateLimiter) sweep(now time.Time) {
	for key, cl := range r.clients {
		if now.Sub(cl.lastSeen) >= r.idleTTL {
			delete(r.clients, key)
		}
	}
	r.lastSweep = now
}

func (r *RateLimiter) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, cl := range r.clients {
		if oldestKey == "" || cl.lastSeen.Before(oldest) {
			oldestKey, oldest = key, cl.lastSeen
		}
	}
	delete(r.clients, oldestKey)
}

// Middleware rejects requests over the client's budget with 429.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			log.Warn().Str("ip", c.ClientIP()).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
