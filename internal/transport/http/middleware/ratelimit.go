package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"crewops/internal/transport/http/api"
)

type rateBucket struct {
	count int
	reset time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*rateBucket
}

// RateLimit enforces a fixed-window per-caller request cap. Authenticated
// callers are keyed by user id, anonymous ones by client IP.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	rl := &rateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*rateBucket),
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(callerKey(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *rateLimiter) allow(key string) bool {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.clients[key]
	if !ok || now.After(bucket.reset) {
		rl.clients[key] = &rateBucket{count: 1, reset: now.Add(rl.window)}
		rl.evictExpired(now)
		return true
	}
	if bucket.count >= rl.limit {
		return false
	}
	bucket.count++
	return true
}

// evictExpired runs under the lock; the map stays small because stale
// buckets are dropped whenever a new one is created.
func (rl *rateLimiter) evictExpired(now time.Time) {
	for key, bucket := range rl.clients {
		if now.After(bucket.reset) {
			delete(rl.clients, key)
		}
	}
}

func callerKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok {
		return "user:" + user.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
