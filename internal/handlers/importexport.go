package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/importexport"
	"github.com/dreamnest/shop-backend/internal/logging"
	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/service/catalog"
	"github.com/dreamnest/shop-backend/internal/service/search"
	"github.com/dreamnest/shop-backend/internal/storage"
)

// ImportExportHandler serves the admin bulk import-export surface.
type ImportExportHandler struct {
	Store   storage.Storage
	Catalog *catalog.Service
	Search  *search.Service
}

func exportFormat(c echo.Context) string {
	if f := c.QueryParam("format"); f == "json" {
		return "json"
	}
	return "csv"
}

func sendExport(c echo.Context, name, format string, data []byte) error {
	contentType := "text/csv"
	if format == "json" {
		contentType = echo.MIMEApplicationJSON
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s.%s", name, format))
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *ImportExportHandler) ExportProducts(c echo.Context) error {
	products, err := h.Store.ListProducts(c.Request().Context(), storage.ProductFilter{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list products failed")
	}

	format := exportFormat(c)
	var data []byte
	if format == "json" {
		data, err = importexport.ProductsToJSON(products)
	} else {
		data, err = importexport.ProductsToCSV(products)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	return sendExport(c, "products", format, data)
}

func (h *ImportExportHandler) ExportOrders(c echo.Context) error {
	orders, err := h.Store.ListAllOrders(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list orders failed")
	}

	format := exportFormat(c)
	var data []byte
	if format == "json" {
		data, err = importexport.OrdersToJSON(orders)
	} else {
		data, err = importexport.OrdersToCSV(orders)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	return sendExport(c, "orders", format, data)
}

func (h *ImportExportHandler) ExportUsers(c echo.Context) error {
	users, err := h.Store.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list users failed")
	}

	format := exportFormat(c)
	var data []byte
	if format == "json" {
		data, err = importexport.UsersToJSON(users)
	} else {
		data, err = importexport.UsersToCSV(users)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	return sendExport(c, "users", format, data)
}

// ImportProducts accepts a CSV or JSON body, detected from the Content-Type
// or an explicit format query parameter, and upserts each record
// individually: one bad row is reported, not a reason to abort the batch.
func (h *ImportExportHandler) ImportProducts(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty body")
	}

	format := c.QueryParam("format")
	if format == "" {
		if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), "json") {
			format = "json"
		} else {
			format = "csv"
		}
	}

	var products []models.Product
	if format == "json" {
		products, err = importexport.ParseProductsJSON(body)
	} else {
		products, err = importexport.ParseProductsCSV(body)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	log := logging.FromContext(ctx).With("handler", "import.products")

	imported := 0
	var importErrors []string
	for i := range products {
		p := products[i]
		if p.ID != 0 {
			if _, err := h.Store.GetProduct(ctx, p.ID); err == nil {
				if err := h.Catalog.Replace(ctx, &p); err != nil {
					importErrors = append(importErrors, fmt.Sprintf("record %d: %v", i+1, err))
					continue
				}
				h.Search.IndexProduct(ctx, &p)
				imported++
				continue
			}
			p.ID = 0
		}
		if err := h.Catalog.Create(ctx, &p); err != nil {
			importErrors = append(importErrors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}
		h.Search.IndexProduct(ctx, &p)
		imported++
	}

	if len(importErrors) > 0 {
		log.Warn("product import finished with errors", "imported", imported, "failed", len(importErrors))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"imported": imported,
		"failed":   len(importErrors),
		"errors":   importErrors,
	})
}
