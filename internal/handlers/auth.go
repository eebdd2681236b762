package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/service/auth"
	"github.com/dreamnest/shop-backend/internal/session"
	"github.com/dreamnest/shop-backend/internal/storage"
)

type AuthHandler struct {
	Auth  *auth.Service
	Store storage.Storage
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Auth.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(err)
	}

	if err := h.Auth.Bind(c.Request().Context(), session.Token(c), user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session bind failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user, "is_admin": user.IsAdmin})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Auth.Unbind(c.Request().Context(), session.Token(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Session reports the caller's session token and bound user, if any.
func (h *AuthHandler) Session(c echo.Context) error {
	resp := echo.Map{
		"session_id": session.Token(c),
		"is_admin":   session.IsAdmin(c),
	}
	if id, ok := session.UserID(c); ok {
		user, err := h.Store.GetUser(c.Request().Context(), id)
		if err == nil {
			resp["user"] = user
		} else if !errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
		}
	}
	return c.JSON(http.StatusOK, resp)
}
