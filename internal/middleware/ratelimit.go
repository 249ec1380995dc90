package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/voicevault/voicevault-backend/internal/database"
	"github.com/voicevault/voicevault-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed counting window per IP.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the request budget within one window.
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked after exceeding the limit
	BlockedIPDuration = 24 * time.Hour
)

// RateLimitMiddleware provides Redis-backed per-IP rate limiting with
// temporary IP blocking. Fails open when Redis is unreachable.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r)
		ctx := context.Background()

		blockedKey := BlockedIPKeyPrefix + ip
		if blocked, err := database.RedisClient.Exists(ctx, blockedKey).Result(); err == nil && blocked > 0 {
			tooManyRequests(w, "Your IP has been temporarily blocked due to excessive requests. Please try again later.", 0)
			return
		}

		rateLimitKey := RateLimitKeyPrefix + ip

		count, err := database.RedisClient.Incr(ctx, rateLimitKey).Result()
		if err != nil {
			// Fail open on Redis errors
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, rateLimitKey, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			database.RedisClient.Set(ctx, blockedKey, "1", BlockedIPDuration)
			tooManyRequests(w, "Rate limit exceeded. Your IP has been temporarily blocked. Please try again later.", int(RateLimitWindow.Seconds()))
			return
		}

		remaining := RateLimitMaxRequests - int(count)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(RateLimitWindow).Unix(), 10))

		next.ServeHTTP(w, r)
	})
}

func tooManyRequests(w http.ResponseWriter, message string, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	if retryAfter > 0 {
		fmt.Fprintf(w, `{"message":%q,"retry_after":%d}`, message, retryAfter)
		return
	}
	fmt.Fprintf(w, `{"message":%q}`, message)
}
