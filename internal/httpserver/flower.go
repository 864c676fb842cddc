package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xxpisal/flower-shop/internal/logging"
	"github.com/xxpisal/flower-shop/internal/service"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListFlowers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_flowers")

	flowers, err := h.Svc.ListFlowers(ctx)
	if err != nil {
		l.Error("list_flowers_error", "status", 500, "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch flowers")
	}

	return c.JSON(http.StatusOK, flowers)
}

func (h *CatalogHTTP) GetFlower(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_flower")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusNotFound, "flower not found")
	}

	flower, err := h.Svc.GetFlower(ctx, uint(id))
	if err != nil {
		l.Warn("get_flower_error", "flower_id", id, "error", err)
		return serviceErrorResponse(c, err, "Failed to fetch flower")
	}

	return c.JSON(http.StatusOK, flower)
}
