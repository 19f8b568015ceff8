package http

import (
	"net"
	"net/http"

	"rental-analyzer/metrics"
)

func RateLimitMiddleware(
	limiter *RateLimiter,
	route string,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			metrics.RateLimited.WithLabelValues(route).Inc()
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
