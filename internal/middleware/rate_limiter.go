package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/bulkwave/campaign-engine/internal/ratelimit"
)

// RateLimiter throttles API callers using the shared token-bucket limiter.
// Callers are keyed by tenant when the tenant header is present, by remote
// address otherwise, so one tenant exhausting its budget never starves
// another.
type RateLimiter struct {
	limiter *ratelimit.Limiter
	limit   int
}

func NewRateLimiter(limiter *ratelimit.Limiter, limit int) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limit:   limit,
	}
}

func (rl *RateLimiter) key(r *http.Request) string {
	if tenantID := r.Header.Get(TenantIDHeader); tenantID != "" {
		return "api:" + tenantID
	}
	return "api:" + r.RemoteAddr
}

// Middleware returns the rate limiting middleware. Each response carries the
// remaining budget; a limited request gets 429 with Retry-After.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := rl.limiter.Acquire(r.Context(), rl.key(r), rl.limit)
			if err != nil {
				// Limiter store failure must not take the API down.
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			if result.Limited {
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter(time.Now())))
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, map[string]interface{}{
					"error":   ErrorCodeRateLimitExceeded,
					"message": ErrorMessageRateLimitExceeded,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
