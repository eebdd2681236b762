package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/storage"
)

type SettingsHandler struct {
	Store storage.Storage
}

// GetSettings is public: the storefront reads display values (shop name,
// delivery pricing, contacts) from here.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.Store.ListSettings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "list settings failed")
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SettingsHandler) PutSetting(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key required")
	}
	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Store.UpsertSetting(c.Request().Context(), key, req.Value); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "save setting failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"key": key, "value": req.Value})
}
