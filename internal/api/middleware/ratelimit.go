package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apiError "github.com/platefeed/platefeed/internal/api/error"
	"github.com/platefeed/platefeed/internal/api/requestid"
)

// RateLimiter tracks a token bucket per client address. Entries idle
// for longer than the cleanup interval are dropped.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter

	limit rate.Limit
	burst int
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

const limiterIdleTTL = 5 * time.Minute

// NewRateLimiter creates a limiter allowing limit requests per second
// with the given burst per client.
func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    limit,
		burst:    burst,
	}
}

func (rl *RateLimiter) allow(client string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > limiterIdleTTL {
			delete(rl.limiters, key)
		}
	}

	cl, ok := rl.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[client] = cl
	}
	cl.lastAccess = now
	return cl.limiter.Allow()
}

// Limit rejects requests over the per-client budget with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}
		if !rl.allow(client) {
			requestID := strconv.FormatUint(requestid.ExtractRequestID(r.Context()), 10)
			w.Header().Set("Retry-After", "60")
			_ = apiError.EncodeError(w, apiError.TooManyRequests, "too many requests", requestID)
			return
		}
		next.ServeHTTP(w, r)
	})
}
