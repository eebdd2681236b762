package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/dreamnest/shop-backend/internal/handlers"
	"github.com/dreamnest/shop-backend/internal/session"
	"github.com/dreamnest/shop-backend/internal/storage"
)

type Deps struct {
	Store               storage.Storage
	AuthHandler         *handlers.AuthHandler
	ProductHandler      *handlers.ProductHandler
	CartHandler         *handlers.CartHandler
	OrderHandler        *handlers.OrderHandler
	UserHandler         *handlers.UserHandler
	SettingsHandler     *handlers.SettingsHandler
	ImportExportHandler *handlers.ImportExportHandler
	SecureCookies       bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api", session.Middleware(d.Store, d.SecureCookies))

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.Logout)
	api.GET("/session", d.AuthHandler.Session)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/search", d.ProductHandler.SearchProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.POST("/products", d.ProductHandler.CreateProduct, session.AdminOnly)
	api.PATCH("/products/:id", d.ProductHandler.PatchProduct, session.AdminOnly)
	api.DELETE("/products/:id", d.ProductHandler.DeleteProduct, session.AdminOnly)

	api.GET("/cart", d.CartHandler.GetCart)
	api.POST("/cart", d.CartHandler.AddToCart)
	api.PATCH("/cart/:id", d.CartHandler.PatchCartItem)
	api.DELETE("/cart/:id", d.CartHandler.DeleteCartItem)
	api.DELETE("/cart", d.CartHandler.ClearCart)

	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.GET("/orders", d.OrderHandler.ListOrders)
	api.GET("/orders/:id", d.OrderHandler.GetOrder)

	api.GET("/settings", d.SettingsHandler.GetSettings)

	admin := api.Group("/admin", session.AdminOnly)

	admin.GET("/orders", d.OrderHandler.ListAllOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateOrderStatus)

	admin.GET("/users", d.UserHandler.ListUsers)
	admin.POST("/users", d.UserHandler.CreateUser)
	admin.PATCH("/users/:id", d.UserHandler.PatchUser)
	admin.DELETE("/users/:id", d.UserHandler.DeleteUser)

	admin.GET("/settings", d.SettingsHandler.GetSettings)
	admin.PUT("/settings/:key", d.SettingsHandler.PutSetting)

	admin.GET("/export/products", d.ImportExportHandler.ExportProducts)
	admin.GET("/export/orders", d.ImportExportHandler.ExportOrders)
	admin.GET("/export/users", d.ImportExportHandler.ExportUsers)
	admin.POST("/import/products", d.ImportExportHandler.ImportProducts)
}
