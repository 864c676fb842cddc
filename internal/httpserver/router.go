package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/xxpisal/flower-shop/internal/service"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	HealthHandler  *HealthHTTP
	Auth           *SessionAuth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.GET("/health", d.HealthHandler.Health)

	auth := api.Group("/auth")
	auth.POST("/signup", d.AuthHandler.Signup)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/me", d.AuthHandler.Me)

	flowers := api.Group("/flowers")
	flowers.GET("", d.CatalogHandler.ListFlowers)
	flowers.GET("/:id", d.CatalogHandler.GetFlower)

	orders := api.Group("/orders", d.Auth.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
}

type errorBody struct {
	Error string `json:"error"`
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, errorBody{Error: msg})
}

// clientDetail returns the client-safe remainder of a wrapped sentinel error.
func clientDetail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// serviceErrorResponse maps a service-layer failure onto exactly one of the
// fixed status/body pairs. Anything unrecognized becomes a 500 with the
// generic fallback message; the cause only reaches the server log.
func serviceErrorResponse(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return errorResponse(c, http.StatusBadRequest, clientDetail(err, service.ErrValidation))
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorResponse(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, clientDetail(err, service.ErrNotFound))
	case errors.Is(err, service.ErrConflict):
		return errorResponse(c, http.StatusConflict, clientDetail(err, service.ErrConflict))
	default:
		return errorResponse(c, http.StatusInternalServerError, fallback)
	}
}
