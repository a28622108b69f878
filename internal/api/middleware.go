package api

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ignite/fitness-api/internal/pkg/httputil"
	"github.com/ignite/fitness-api/internal/pkg/logger"
	"github.com/ignite/fitness-api/internal/ratelimit"
)

// securityHeaders sets the baseline response headers on every route.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware answers 429 once a client exhausts its window. The
// client key is the remote IP; chi's RealIP middleware runs earlier so
// proxied requests are keyed by the originating address. A limiter backend
// error fails open.
func rateLimitMiddleware(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)

			allowed, retryAfter, err := limiter.Allow(r.Context(), client)
			if err != nil {
				logger.Warn("rate limit check failed", "client", client, "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if secs := int(retryAfter / time.Second); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				httputil.TooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
