package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Pinger reports store reachability.
type Pinger func(ctx context.Context) error

// HealthCheck answers 200 while the store responds and 503 otherwise. A nil
// ping only reports the process as up.
func HealthCheck(ping Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := echo.Map{"status": "healthy", "service": "folio-api"}
		if ping == nil {
			return c.JSON(http.StatusOK, status)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			log.Error().Err(err).Msg("Health check: store unreachable")
			status["status"] = "unhealthy"
			status["store"] = "unavailable"
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		status["store"] = "ok"
		return c.JSON(http.StatusOK, status)
	}
}
