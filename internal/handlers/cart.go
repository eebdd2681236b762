package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/events"
	"github.com/dreamnest/shop-backend/internal/service/cart"
	"github.com/dreamnest/shop-backend/internal/session"
)

type CartHandler struct {
	Cart     *cart.Service
	Producer *events.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	lines, err := h.Cart.Items(c.Request().Context(), session.Token(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req cart.AddRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sid := session.Token(c)
	item, err := h.Cart.Add(c.Request().Context(), sid, req)
	if err != nil {
		return serviceError(err)
	}

	publish(c, h.Producer, events.TopicCart, sid, map[string]any{
		"type":         "cart_item_added",
		"session_id":   sid,
		"cart_item_id": item.ID,
		"product_id":   item.ProductID,
		"quantity":     item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) PatchCartItem(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var upd cart.Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sid := session.Token(c)
	item, err := h.Cart.Update(c.Request().Context(), sid, id, upd)
	if err != nil {
		return serviceError(err)
	}

	publish(c, h.Producer, events.TopicCart, sid, map[string]any{
		"type":         "cart_item_updated",
		"session_id":   sid,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) DeleteCartItem(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	sid := session.Token(c)
	if err := h.Cart.Remove(c.Request().Context(), sid, id); err != nil {
		return serviceError(err)
	}

	publish(c, h.Producer, events.TopicCart, sid, map[string]any{
		"type":         "cart_item_removed",
		"session_id":   sid,
		"cart_item_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	sid := session.Token(c)
	if err := h.Cart.Clear(c.Request().Context(), sid); err != nil {
		return serviceError(err)
	}

	publish(c, h.Producer, events.TopicCart, sid, map[string]any{
		"type":       "cart_cleared",
		"session_id": sid,
	})
	return c.NoContent(http.StatusNoContent)
}
