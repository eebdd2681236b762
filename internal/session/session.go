// Package session carries the opaque per-browser token that scopes an
// anonymous cart and order history. The token is minted on first contact and
// stored in an HttpOnly cookie; a Session row exists only once a user logs
// in.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/storage"
)

const (
	CookieName = "session_id"

	ctxToken   = "session_id"
	ctxUserID  = "user_id"
	ctxIsAdmin = "is_admin"
)

func newCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware ensures every request carries a session token and resolves the
// logged-in user, if any, into the echo context.
func Middleware(store storage.Storage, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
				token = ck.Value
			}
			if token == "" {
				token = uuid.NewString()
				c.SetCookie(newCookie(token, secure))
			}
			c.Set(ctxToken, token)

			sess, err := store.GetSession(c.Request().Context(), token)
			if err == nil {
				if sess.UserID != nil {
					c.Set(ctxUserID, *sess.UserID)
				}
				c.Set(ctxIsAdmin, sess.IsAdmin)
			} else if !errors.Is(err, storage.ErrNotFound) {
				return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
			}

			return next(c)
		}
	}
}

// AdminOnly rejects requests whose session is not flagged as admin.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if isAdmin, ok := c.Get(ctxIsAdmin).(bool); !ok || !isAdmin {
			return echo.NewHTTPError(http.StatusUnauthorized, "admin access required")
		}
		return next(c)
	}
}

// Token returns the request's session token, empty outside the middleware.
func Token(c echo.Context) string {
	if t, ok := c.Get(ctxToken).(string); ok {
		return t
	}
	return ""
}

// UserID returns the logged-in user id and whether one is bound.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ctxUserID).(uint)
	return id, ok
}

func IsAdmin(c echo.Context) bool {
	isAdmin, ok := c.Get(ctxIsAdmin).(bool)
	return ok && isAdmin
}
