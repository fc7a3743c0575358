package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles credential endpoints per remote address.
// Stale limiters are dropped after an hour of inactivity.
type LoginRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	logger   *slog.Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLoginRateLimiter(perMinute int, logger *slog.Logger) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	rl := &LoginRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		logger:   logger,
	}
	go rl.cleanup()
	return rl
}

func (rl *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !rl.allow(host) {
			rl.logger.Warn("login rate limit exceeded", "remote_addr", host)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "too many login attempts", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *LoginRateLimiter) allow(host string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[host]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[host] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *LoginRateLimiter) cleanup() {
	for range time.Tick(10 * time.Minute) {
		rl.mu.Lock()
		for host, v := range rl.visitors {
			if time.Since(v.lastSeen) > time.Hour {
				delete(rl.visitors, host)
			}
		}
		rl.mu.Unlock()
	}
}
