package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/hash"
	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

// UserHandler is the admin users CRUD surface.
type UserHandler struct {
	Store storage.Storage
}

type userRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	IsAdmin   *bool   `json:"is_admin"`
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Store.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list users failed")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == nil || *req.Username == "" || req.Password == nil || *req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}

	if _, err := h.Store.GetUserByUsername(c.Request().Context(), *req.Username); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "user lookup failed")
	}

	pwHash, err := hash.HashPassword(*req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "password hash failed")
	}

	user := models.User{Username: *req.Username, PasswordHash: pwHash}
	req.Password = nil
	applyUserPatch(&user, req)

	if err := h.Store.CreateUser(c.Request().Context(), &user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "create user failed")
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) PatchUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Store.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "user lookup failed")
	}

	if req.Password != nil && *req.Password != "" {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "password hash failed")
		}
		user.PasswordHash = pwHash
	}
	req.Password = nil
	applyUserPatch(user, req)

	if err := h.Store.UpdateUser(c.Request().Context(), user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "update user failed")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Store.DeleteUser(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "delete user failed")
	}
	return c.NoContent(http.StatusNoContent)
}

func applyUserPatch(user *models.User, req userRequest) {
	if req.Username != nil && *req.Username != "" {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
}
