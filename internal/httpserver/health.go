package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/xxpisal/flower-shop/internal/db"
	"github.com/xxpisal/flower-shop/internal/logging"
)

type HealthHTTP struct {
	DB *gorm.DB
}

// Health reports whether a trivial datastore round trip still succeeds.
func (h *HealthHTTP) Health(c echo.Context) error {
	ctx := c.Request().Context()

	if err := db.Ping(ctx, h.DB); err != nil {
		logging.FromContext(ctx).Error("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":   "unhealthy",
			"database": "disconnected",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "healthy",
		"database": "connected",
	})
}
