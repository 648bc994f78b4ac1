package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per client key in fixed, non-overlapping
// windows. It is constructed once at server start and injected into the
// router so tests get isolated instances and a shared external counter can
// replace it later without touching call sites.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	max     int
	period  time.Duration
	now     func() time.Time
}

func NewRateLimiter(max int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		max:     max,
		period:  period,
		now:     time.Now,
	}
}

// Allow records one request for key and reports whether it fits in the
// current window. When it does not, retryAfter is the time until the window
// resets. Expired windows reset lazily on the key's next visit.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, exists := rl.clients[key]
	if !exists || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(rl.period)}
		rl.clients[key] = w
	}

	if w.count >= rl.max {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

// Middleware applies the limiter keyed by client network address.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		ok, retryAfter := rl.Allow(ip)
		if !ok {
			seconds := int(retryAfter.Seconds() + 0.999)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":      "too many requests",
				"retryAfter": seconds,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
