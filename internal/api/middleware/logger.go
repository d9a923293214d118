package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/api/httperr"
)

// RequestLogger emits one structured access-log line per request: method,
// path, status, latency, client IP, and the request ID assigned upstream.
// 5xx lines log at error level, 4xx at warn, the rest at info. Bearer tokens
// and bodies never appear in the log.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			var evt *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case status >= http.StatusBadRequest:
				evt = log.Warn()
			default:
				evt = log.Info()
			}

			evt.Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return err
		}
	}
}

// responseStatus resolves the status a request will answer with, whether the
// handler wrote it already or returned an error still to be rendered.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var coded *httperr.Error
	if errors.As(err, &coded) {
		return coded.Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
