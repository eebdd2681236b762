package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dreamnest/shop-backend/internal/config"
	"github.com/dreamnest/shop-backend/internal/events"
	"github.com/dreamnest/shop-backend/internal/handlers"
	"github.com/dreamnest/shop-backend/internal/hash"
	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/service/auth"
	"github.com/dreamnest/shop-backend/internal/service/cart"
	"github.com/dreamnest/shop-backend/internal/service/catalog"
	"github.com/dreamnest/shop-backend/internal/service/order"
	"github.com/dreamnest/shop-backend/internal/service/search"
	"github.com/dreamnest/shop-backend/internal/session"
	"github.com/dreamnest/shop-backend/internal/storage/gormstore"
	httpserver "github.com/dreamnest/shop-backend/internal/transport/http"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Store  *gormstore.Store
	Events *eventRecorder
}

// eventRecorder stands in for the kafka writer and keeps every published
// message for assertions.
type eventRecorder struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (r *eventRecorder) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msgs...)
	return nil
}

func (r *eventRecorder) Close() error { return nil }

func (r *eventRecorder) byTopic(topic string) []kafka.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []kafka.Message
	for _, m := range r.msgs {
		if m.Topic == topic {
			out = append(out, m)
		}
	}
	return out
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	store := gormstore.New(db)
	catalogSvc := &catalog.Service{Store: store}
	cartSvc := &cart.Service{Store: store}
	searchSvc := &search.Service{Index: "products", Store: store}
	recorder := &eventRecorder{}
	producer := events.NewWithWriter(recorder)

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		Store: store,
		AuthHandler: &handlers.AuthHandler{
			Auth:  &auth.Service{Store: store},
			Store: store,
		},
		ProductHandler: &handlers.ProductHandler{
			Catalog:  catalogSvc,
			Search:   searchSvc,
			Producer: producer,
		},
		CartHandler: &handlers.CartHandler{Cart: cartSvc, Producer: producer},
		OrderHandler: &handlers.OrderHandler{
			Orders:   &order.Service{Store: store, Cart: cartSvc},
			Producer: producer,
		},
		UserHandler:         &handlers.UserHandler{Store: store},
		SettingsHandler:     &handlers.SettingsHandler{Store: store},
		ImportExportHandler: &handlers.ImportExportHandler{Store: store, Catalog: catalogSvc, Search: searchSvc},
	})

	return &testEnv{T: t, E: e, Store: store, Events: recorder}
}

func (env *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doRaw(method, path, contentType string, body []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: session.CookieName, Value: token, Path: "/"}
}

// adminCookie binds an admin session row directly to a fixed token.
func adminCookie(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()

	pwHash, err := hash.HashPassword("admin-password")
	require.NoError(t, err)
	admin := &models.User{Username: "admin", PasswordHash: pwHash, IsAdmin: true}
	require.NoError(t, env.Store.CreateUser(context.Background(), admin))
	require.NoError(t, env.Store.SaveSession(context.Background(), &models.Session{
		Token:   "admin-token",
		UserID:  &admin.ID,
		IsAdmin: true,
	}))
	return sessionCookie("admin-token")
}

func seedProduct(t *testing.T, env *testEnv) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:      "Luna bed",
		Category:  models.CategoryBed,
		BasePrice: decimal.NewFromInt(30000),
		Sizes: []models.SizeOption{
			{ID: "single", Label: "90x200"},
			{ID: "double", Label: "160x200", PriceDelta: decimal.NewFromInt(5000)},
		},
		FabricCategories: []models.FabricCategoryOption{
			{ID: "standard", Name: "Standard"},
		},
		Fabrics: []models.FabricOption{
			{ID: "beige", Name: "Beige", CategoryID: "standard"},
		},
		InStock: true,
	}
	require.NoError(t, env.Store.CreateProduct(context.Background(), p))
	return p
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
