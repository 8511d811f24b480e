package middleware

import (
	"context"
	"net"
	"net/http"

	pkgerrors "clutchdemo/pkg/errors"

	"go.uber.org/zap"
)

// IPLimiter is satisfied by ratelimit.IPRateLimiter
type IPLimiter interface {
	Allow(ctx context.Context, ip string) (bool, error)
}

// RateLimit rejects clients over their per-IP budget with 429. Limiter
// failures let the request through.
func RateLimit(limiter IPLimiter, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Warn("Rate limiter failed, allowing request",
					zap.String("ip", ip),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitedError("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port RealIP leaves on RemoteAddr for direct clients
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
