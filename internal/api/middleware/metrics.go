package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/metrics"
)

// Metrics records request duration per route template and status code.
// c.Path() is the registered template (e.g. /todos/:id), keeping label
// cardinality bounded regardless of path parameters.
func Metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		metrics.RequestDuration.
			WithLabelValues(c.Path(), strconv.Itoa(responseStatus(c, err))).
			Observe(time.Since(start).Seconds())
		return err
	}
}
