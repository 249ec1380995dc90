package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/voicevault/voicevault-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// HostCheck returns 403 when r.Host does not match allowedHost.
// allowedHost should be the bare hostname without scheme or port.
func HostCheck(allowedHost string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowedHost == "" {
				next.ServeHTTP(w, r)
				return
			}
			reqHost := r.Host
			if host, _, err := net.SplitHostPort(reqHost); err == nil {
				reqHost = host
			}
			if !strings.EqualFold(strings.TrimSpace(reqHost), strings.TrimSpace(allowedHost)) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limiterPool hands out one in-memory token-bucket limiter per client IP and
// evicts limiters that have been idle too long.
type limiterPool struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	started bool
}

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 30 * time.Minute
)

func newLimiterPool(limit rate.Limit, burst int) *limiterPool {
	return &limiterPool{
		entries: make(map[string]*limiterEntry),
		limit:   limit,
		burst:   burst,
	}
}

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCleanupOnce()
	e, ok := p.entries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(p.limit, p.burst),
			lastUse: time.Now(),
		}
		p.entries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func (p *limiterPool) startCleanupOnce() {
	if p.started {
		return
	}
	p.started = true
	go func() {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			p.mu.Lock()
			now := time.Now()
			for ip, e := range p.entries {
				if now.Sub(e.lastUse) > limiterTTL {
					delete(p.entries, ip)
				}
			}
			p.mu.Unlock()
		}
	}()
}

var (
	// globalPool limits each IP to 1 req/s, burst 10.
	globalPool = newLimiterPool(rate.Limit(1), 10)
	// loginPool applies a stricter limit to credential routes: 1 req/5s, burst 2.
	loginPool = newLimiterPool(rate.Every(5*time.Second), 2)
)

var loginPaths = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// GlobalRateLimit limits each IP to 1 req/s, burst 10. Returns 429 when exceeded.
func GlobalRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !globalPool.get(clientip.RealClientIP(r)).Allow() {
			tooManyRequests(w, "Too many requests. Please slow down.", 0)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRateLimit applies the stricter limit to credential routes only.
// Use after GlobalRateLimit.
func LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !loginPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		if !loginPool.get(clientip.RealClientIP(r)).Allow() {
			tooManyRequests(w, "Too many login attempts. Please try again later.", 0)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns the middleware chain for production:
// SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit.
func ProductionSecurity(allowedHost string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		HostCheck(allowedHost),
		GlobalRateLimit,
		LoginRateLimit,
	}
}
