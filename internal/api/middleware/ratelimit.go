package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heavyrent/rental-service/internal/api/handlers"
)

const (
	msgRateLimited   = "rate limit exceeded, try again later"
	limiterIdleAfter = 10 * time.Minute
	limiterSweepSize = 10000
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller: the session user when authenticated, the client IP otherwise.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
	logger   Logger
}

func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
		logger:   logger,
	}
}

func (l *RateLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.limiters) > limiterSweepSize {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) > limiterIdleAfter {
				delete(l.limiters, k)
			}
		}
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Middleware answers 429 once the caller's bucket is empty.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ip:" + clientIP(r)
		if s, ok := GetSession(r.Context()); ok {
			key = "user:" + s.UserID.String()
		}

		if !l.getLimiter(key, time.Now()).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded: key=%s", r.Method, r.URL.Path, key)
			handlers.RespondError(w, http.StatusTooManyRequests, "rate_limited", msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
