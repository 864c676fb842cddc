package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxpisal/flower-shop/internal/logging"
	"github.com/xxpisal/flower-shop/internal/session"
)

type SessionAuth struct {
	Sessions session.Store
}

// RequireAuth rejects requests without a live session before they reach the
// service layer. The authenticated identity is placed on the echo context.
func (m *SessionAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			return errorResponse(c, http.StatusUnauthorized, "Please log in")
		}

		sess, err := m.Sessions.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				c.SetCookie(session.DeleteCookie())
				return errorResponse(c, http.StatusUnauthorized, "Please log in")
			}
			logging.FromContext(c.Request().Context()).Error("session lookup failed", "error", err)
			return errorResponse(c, http.StatusInternalServerError, "Internal server error")
		}

		c.Set("userID", sess.UserID)
		c.Set("userName", sess.UserName)
		return next(c)
	}
}

func userID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}
