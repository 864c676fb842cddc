package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xxpisal/flower-shop/internal/events"
	"github.com/xxpisal/flower-shop/internal/logging"
	"github.com/xxpisal/flower-shop/internal/service"
	"github.com/xxpisal/flower-shop/internal/session"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "All fields are required")
	}

	user, token, err := h.Svc.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return serviceErrorResponse(c, err, "Signup failed")
	}

	c.SetCookie(session.CreateCookie(token, time.Now().Add(session.TTL)))

	h.publish(c, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "Email and password are required")
	}

	user, token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return serviceErrorResponse(c, err, "Login failed")
	}

	c.SetCookie(session.CreateCookie(token, time.Now().Add(session.TTL)))

	h.publish(c, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]interface{}{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Logout always clears the client cookie; only a store failure while
// destroying the server-side record is an error.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout_failed", "status", 500, "error", err)
			return errorResponse(c, http.StatusInternalServerError, "Logout failed")
		}
	}

	c.SetCookie(session.DeleteCookie())
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged out",
	})
}

// Me answers from the session record alone, without touching user rows.
func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return errorResponse(c, http.StatusUnauthorized, "Not logged in")
	}

	sess, err := h.Svc.Sessions.Get(ctx, cookie.Value)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			logging.FromContext(ctx).Error("session lookup failed", "error", err)
		}
		return errorResponse(c, http.StatusUnauthorized, "Not logged in")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":   sess.UserID,
		"name": sess.UserName,
	})
}
