package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler pings the database and the key-value store and reports
// per-service status. Any failing dependency turns the response into 503.
func (a *StorefrontAPI) HealthHandler(c echo.Context) error {
	ctx := c.Request().Context()

	status := http.StatusOK
	mongoStatus := "ok"
	redisStatus := "ok"

	if err := a.db.Ping(ctx); err != nil {
		mongoStatus = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := a.store.Ping(ctx); err != nil {
		redisStatus = err.Error()
		status = http.StatusServiceUnavailable
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	return c.JSON(status, echo.Map{
		"status": overall,
		"services": echo.Map{
			"mongodb": mongoStatus,
			"redis":   redisStatus,
		},
	})
}
