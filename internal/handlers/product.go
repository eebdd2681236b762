package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/events"
	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/service/catalog"
	"github.com/dreamnest/shop-backend/internal/service/search"
	"github.com/dreamnest/shop-backend/internal/storage"
	"github.com/dreamnest/shop-backend/internal/util"
)

type ProductHandler struct {
	Catalog  *catalog.Service
	Search   *search.Service
	Producer *events.Producer
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	filter := storage.ProductFilter{Category: c.QueryParam("category")}
	if v := c.QueryParam("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}

	products, err := h.Catalog.List(c.Request().Context(), filter)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	product, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var patch catalog.Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product := models.Product{InStock: true}
	patch.Apply(&product)

	if err := h.Catalog.Create(c.Request().Context(), &product); err != nil {
		return serviceError(err)
	}

	h.Search.IndexProduct(c.Request().Context(), &product)
	publish(c, h.Producer, events.TopicProducts, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var patch catalog.Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Catalog.Update(c.Request().Context(), id, patch)
	if err != nil {
		return serviceError(err)
	}

	h.Search.IndexProduct(c.Request().Context(), product)
	publish(c, h.Producer, events.TopicProducts, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	h.Search.RemoveProduct(c.Request().Context(), id)
	publish(c, h.Producer, events.TopicProducts, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := util.Calculate(page, size)

	total, products, err := h.Search.Search(c.Request().Context(), q, from, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
