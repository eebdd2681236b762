package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/events"
	"github.com/dreamnest/shop-backend/internal/logging"
	"github.com/dreamnest/shop-backend/internal/service/auth"
	"github.com/dreamnest/shop-backend/internal/service/cart"
	"github.com/dreamnest/shop-backend/internal/service/catalog"
	"github.com/dreamnest/shop-backend/internal/service/order"
)

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// serviceError maps the service sentinel errors onto HTTP statuses; anything
// unrecognized is a 500.
func serviceError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrValidation),
		errors.Is(err, cart.ErrValidation),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, auth.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// publish sends a mutation event with a short timeout; failures are logged
// and never fail the request.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", topic, "error", err)
	}
}
