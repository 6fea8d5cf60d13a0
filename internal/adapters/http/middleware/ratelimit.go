package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mwestberg/todo-api/internal/platform/config"
)

// limiterIdleTTL is how long a client's limiter survives without traffic
// before the cleanup pass drops it.
const limiterIdleTTL = 10 * time.Minute

// clientLimiter pairs a token bucket with its last-seen time for cleanup.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimit returns middleware that throttles requests per client IP
// using a token bucket. It guards the credential endpoints against online
// guessing; authenticated routes are not rate limited here. Over-limit
// requests receive a 429 with Retry-After.
//
// Returns an identity middleware when the config disables rate limiting.
func LoginRateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	var (
		mu        sync.Mutex
		limiters  = make(map[string]*clientLimiter)
		lastSweep time.Time
	)

	lookup := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastSweep) > limiterIdleTTL {
			for key, cl := range limiters {
				if now.Sub(cl.lastSeen) > limiterIdleTTL {
					delete(limiters, key)
				}
			}
			lastSweep = now
		}

		cl, ok := limiters[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.LoginRPS), cfg.LoginBurst)}
			limiters[ip] = cl
		}
		cl.lastSeen = now
		return cl.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lookup(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP derives the throttling key from the connection's remote address.
// Proxy headers are deliberately ignored: they are client-controlled and
// would let an attacker mint fresh buckets per request.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
