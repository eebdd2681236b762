package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/events"
	"github.com/dreamnest/shop-backend/internal/service/order"
	"github.com/dreamnest/shop-backend/internal/session"
)

type OrderHandler struct {
	Orders   *order.Service
	Producer *events.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var draft order.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	created, err := h.Orders.Create(c.Request().Context(), session.Token(c), draft)
	if err != nil {
		return serviceError(err)
	}

	publish(c, h.Producer, events.TopicOrders, strconv.FormatUint(uint64(created.ID), 10), map[string]any{
		"type":         "order_created",
		"order_id":     created.ID,
		"session_id":   created.SessionID,
		"total_amount": created.TotalAmount.String(),
		"items":        len(created.Items),
	})
	return c.JSON(http.StatusCreated, created)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.Orders.List(c.Request().Context(), session.Token(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	o, err := h.Orders.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	// An order is addressable by its own session or by an admin; anyone
	// else sees NotFound rather than a hint that the id exists.
	if o.SessionID != session.Token(c) && !session.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.Orders.ListAll(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Orders.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return serviceError(err)
	}

	publish(c, h.Producer, events.TopicOrders, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":     "order_status_updated",
		"order_id": id,
		"status":   req.Status,
	})
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}
