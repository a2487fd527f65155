package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vividmart/storefront/cache"
	"github.com/vividmart/storefront/internal/metrics"
)

const rateLimitKeyPrefix = "rate_limit:"

// RateLimit enforces a per-client request budget for a named route group
// using the store's atomic counter. Store outages never block traffic: the
// counter degrades to a permissive default.
func RateLimit(store cache.KeyValueStore, name string, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateLimitKeyPrefix + name + ":" + c.RealIP()
			res := store.IncrementCounter(c.Request().Context(), key, window, limit)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetSeconds, 10))

			if res.Limited {
				metrics.RateLimitedTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": "Too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}
