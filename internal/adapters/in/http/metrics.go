package http

import (
	"strconv"
	"time"

	"fulfillment/internal/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latencies per route. The
// route template is used as the path label so IDs do not explode cardinality.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		path := ctx.Path()
		if path == "" {
			path = ctx.Request().URL.Path
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			ctx.Request().Method,
			path,
			strconv.Itoa(ctx.Response().Status),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			ctx.Request().Method,
			path,
		).Observe(time.Since(start).Seconds())

		return err
	}
}
