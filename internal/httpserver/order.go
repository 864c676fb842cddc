package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xxpisal/flower-shop/internal/events"
	"github.com/xxpisal/flower-shop/internal/logging"
	"github.com/xxpisal/flower-shop/internal/service"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	uid, ok := userID(c)
	if !ok {
		return errorResponse(c, http.StatusUnauthorized, "Please log in")
	}

	var req struct {
		FlowerID uint `json:"flower_id"`
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "Flower and quantity are required")
	}

	order, err := h.Svc.CreateOrder(ctx, uid, req.FlowerID, req.Quantity)
	if err != nil {
		l.Warn("create_order_error", "flower_id", req.FlowerID, "error", err)
		return serviceErrorResponse(c, err, "Failed to create order")
	}

	l.Info("create_order_success", "order_id", order.ID)
	h.publish(c, fmt.Sprint(uid), map[string]interface{}{
		"type":        "order_created",
		"order_id":    order.ID,
		"user_id":     uid,
		"flower_id":   order.FlowerID,
		"quantity":    order.Quantity,
		"total_price": order.TotalPrice,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	uid, ok := userID(c)
	if !ok {
		return errorResponse(c, http.StatusUnauthorized, "Please log in")
	}

	orders, err := h.Svc.ListOrders(ctx, uid)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, orders)
}
