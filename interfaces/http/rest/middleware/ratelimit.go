package middleware

import (
	"net/http"

	"cortexgraph/pkg/auth"
)

// RateLimit enforces a per-IP request budget using a distributed
// limiter, for deployments that share a DynamoDB table across Lambda
// invocations (the graph/hybrid storage types already carry one).
func RateLimit(limiter *auth.DistributedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				// fail open: a limiter error should not block legitimate traffic
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
