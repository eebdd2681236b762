package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dreamnest/shop-backend/internal/models"
)

func TestUserAdministration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/admin/users", nil, sessionCookie("visitor"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := adminCookie(t, env)

	rec = env.do(http.MethodPost, "/api/admin/users", map[string]any{"username": "manager"}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/admin/users", map[string]any{
		"username": "manager",
		"password": "secret",
		"email":    "manager@example.com",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.User
	decodeJSON(t, rec, &created)
	require.NotZero(t, created.ID)
	require.Equal(t, "manager@example.com", created.Email)

	rec = env.do(http.MethodPost, "/api/admin/users", map[string]any{"username": "manager", "password": "x"}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	decodeJSON(t, rec, &users)
	require.Len(t, users, 2) // the seeded admin and the new manager

	userPath := fmt.Sprintf("/api/admin/users/%d", created.ID)
	rec = env.do(http.MethodPatch, userPath, map[string]any{"is_admin": true, "phone": "+100200300"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var patched models.User
	decodeJSON(t, rec, &patched)
	require.True(t, patched.IsAdmin)
	require.Equal(t, "+100200300", patched.Phone)

	rec = env.do(http.MethodPatch, "/api/admin/users/999", map[string]any{"phone": "x"}, admin)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, userPath, nil, admin)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/api/admin/users", nil, admin)
	decodeJSON(t, rec, &users)
	require.Len(t, users, 1)
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)
	admin := adminCookie(t, env)

	rec := env.do(http.MethodPut, "/api/admin/settings/shop_name", map[string]string{"value": "DreamNest"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodPut, "/api/admin/settings/delivery_price", map[string]string{"value": "1000"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	// Overwriting a key keeps a single entry.
	rec = env.do(http.MethodPut, "/api/admin/settings/shop_name", map[string]string{"value": "DreamNest Home"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	// Settings are publicly readable.
	rec = env.do(http.MethodGet, "/api/settings", nil, sessionCookie("visitor"))
	require.Equal(t, http.StatusOK, rec.Code)
	var settings map[string]string
	decodeJSON(t, rec, &settings)
	require.Len(t, settings, 2)
	require.Equal(t, "DreamNest Home", settings["shop_name"])
	require.Equal(t, "1000", settings["delivery_price"])

	// Writes are not.
	rec = env.do(http.MethodPut, "/api/admin/settings/shop_name", map[string]string{"value": "x"}, sessionCookie("visitor"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestImportExportProducts(t *testing.T) {
	env := newTestEnv(t)
	admin := adminCookie(t, env)

	imports := []map[string]any{
		{"name": "Luna bed", "category": "bed", "base_price": "30000"},
		{"name": "Cloud mattress", "category": "mattress", "base_price": "15000"},
		{"name": "bad row", "category": "sofa"},
	}
	rec := env.do(http.MethodPost, "/api/admin/import/products", imports, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Imported int      `json:"imported"`
		Failed   int      `json:"failed"`
		Errors   []string `json:"errors"`
	}
	decodeJSON(t, rec, &result)
	require.Equal(t, 2, result.Imported)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)

	// Records with a known id update in place.
	rec = env.do(http.MethodPost, "/api/admin/import/products", []map[string]any{
		{"id": 1, "name": "Luna bed v2", "category": "bed", "base_price": "32000"},
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &result)
	require.Equal(t, 1, result.Imported)

	rec = env.do(http.MethodGet, "/api/products/1", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Product
	decodeJSON(t, rec, &updated)
	require.Equal(t, "Luna bed v2", updated.Name)

	// An invalid record with a known id is rejected like any other bad row:
	// it lands in errors, leaves the stored product untouched, and does not
	// abort the rest of the batch.
	rec = env.do(http.MethodPost, "/api/admin/import/products", []map[string]any{
		{
			"id": 1, "name": "Luna bed v3", "category": "bed", "base_price": "35000",
			"fabrics": []map[string]any{{"id": "velvet-1", "category_id": "no-such-category"}},
		},
		{"id": 2, "name": "Cloud mattress firm", "category": "mattress", "base_price": "16000"},
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &result)
	require.Equal(t, 1, result.Imported)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "record 1")

	rec = env.do(http.MethodGet, "/api/products/1", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &updated)
	require.Equal(t, "Luna bed v2", updated.Name)
	require.Empty(t, updated.Fabrics)

	rec = env.do(http.MethodGet, "/api/products/2", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &updated)
	require.Equal(t, "Cloud mattress firm", updated.Name)

	// CSV import by content type.
	csvBody := "name,category,base_price\nFeather pillow,accessory,2000\n"
	rec = env.doRaw(http.MethodPost, "/api/admin/import/products", "text/csv", []byte(csvBody), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &result)
	require.Equal(t, 1, result.Imported)

	// JSON export round-trips everything imported so far.
	rec = env.do(http.MethodGet, "/api/admin/export/products?format=json", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "products.json")
	var exported []models.Product
	decodeJSON(t, rec, &exported)
	require.Len(t, exported, 3)

	// CSV export carries the header row.
	rec = env.do(http.MethodGet, "/api/admin/export/products", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "products.csv")
	require.True(t, strings.HasPrefix(rec.Body.String(), "id,name,description,category"))

	rec = env.do(http.MethodGet, "/api/admin/export/products", nil, sessionCookie("visitor"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExportOrdersAndUsers(t *testing.T) {
	env := newTestEnv(t)
	p := seedProduct(t, env)
	alice := sessionCookie("sess-alice")

	rec := env.do(http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Alice",
		"items":         []map[string]any{{"product_id": p.ID, "quantity": 1, "price": "30000"}},
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	admin := adminCookie(t, env)

	rec = env.do(http.MethodGet, "/api/admin/export/orders", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Alice")

	rec = env.do(http.MethodGet, "/api/admin/export/users?format=json", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	decodeJSON(t, rec, &users)
	require.Len(t, users, 1)
	require.Equal(t, "admin", users[0].Username)
}
