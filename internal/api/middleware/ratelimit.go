package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/api/httperr"
)

// RateLimiter is the budget check behind the rate-limit middleware.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles requests per client IP. When the limiter backend is
// unreachable the request is let through (fail open): losing the throttle is
// better than losing login.
func RateLimit(limiter RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("path", c.Path()).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if !ok {
				return httperr.New(http.StatusTooManyRequests, httperr.CodeRateLimited,
					"too many attempts, please try again later")
			}
			return next(c)
		}
	}
}
