package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/dreamnest/shop-backend/internal/config"
	"github.com/dreamnest/shop-backend/internal/es"
	"github.com/dreamnest/shop-backend/internal/events"
	"github.com/dreamnest/shop-backend/internal/handlers"
	"github.com/dreamnest/shop-backend/internal/logging"
	"github.com/dreamnest/shop-backend/internal/service/auth"
	"github.com/dreamnest/shop-backend/internal/service/cart"
	"github.com/dreamnest/shop-backend/internal/service/catalog"
	"github.com/dreamnest/shop-backend/internal/service/order"
	"github.com/dreamnest/shop-backend/internal/service/search"
	"github.com/dreamnest/shop-backend/internal/storage"
	"github.com/dreamnest/shop-backend/internal/storage/gormstore"
	"github.com/dreamnest/shop-backend/internal/storage/memstore"
	httpserver "github.com/dreamnest/shop-backend/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	var store storage.Storage
	var db *gorm.DB
	if cfg.STORAGE == "memory" {
		store = memstore.New()
		logger.Warn("running on in-memory storage, data will not survive a restart")
	} else {
		db, err = config.InitDB(cfg)
		if err != nil {
			log.Fatalf("db init: %v", err)
		}
		store = gormstore.New(db)
	}

	producer := events.New([]string{cfg.KAFKA_ADDRESS})
	if producer == nil {
		logger.Info("kafka not configured, event publishing disabled")
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init: %v", err)
	}
	if esClient == nil {
		logger.Info("elasticsearch not configured, search falls back to database")
	}

	catalogSvc := &catalog.Service{Store: store}
	cartSvc := &cart.Service{Store: store, MatchCustomDimensions: cfg.StrictCartIdentity()}
	orderSvc := &order.Service{Store: store, Cart: cartSvc}
	authSvc := &auth.Service{Store: store}
	searchSvc := &search.Service{ES: esClient, Index: "products", Store: store}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	deps := httpserver.Deps{
		Store:               store,
		AuthHandler:         &handlers.AuthHandler{Auth: authSvc, Store: store},
		ProductHandler:      &handlers.ProductHandler{Catalog: catalogSvc, Search: searchSvc, Producer: producer},
		CartHandler:         &handlers.CartHandler{Cart: cartSvc, Producer: producer},
		OrderHandler:        &handlers.OrderHandler{Orders: orderSvc, Producer: producer},
		UserHandler:         &handlers.UserHandler{Store: store},
		SettingsHandler:     &handlers.SettingsHandler{Store: store},
		ImportExportHandler: &handlers.ImportExportHandler{Store: store, Catalog: catalogSvc, Search: searchSvc},
		SecureCookies:       cfg.SecureCookies(),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error("db close error", "error", err)
			}
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
