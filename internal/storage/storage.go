// Package storage defines the persistence port shared by the in-memory and
// relational backends. Services depend on this interface only, so tests can
// run against memstore while production runs against gormstore.
package storage

import (
	"context"
	"errors"

	"github.com/dreamnest/shop-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

// ProductFilter narrows ListProducts. Zero value means "everything".
type ProductFilter struct {
	Category string
	Featured *bool
}

// CartKey is the identity of a cart line for merge purposes. Custom
// dimensions take part in the match only when MatchCustomDimensions is set;
// the legacy storefront merged lines regardless of dimensions.
type CartKey struct {
	SessionID              string
	ProductID              uint
	SelectedSize           string
	SelectedFabricCategory string
	SelectedFabric         string
	HasLiftingMechanism    bool

	CustomWidth           *int
	CustomLength          *int
	MatchCustomDimensions bool
}

type Storage interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	SearchProducts(ctx context.Context, query string, offset, limit int) ([]models.Product, error)

	GetCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error)
	GetCartItem(ctx context.Context, id uint) (*models.CartItem, error)
	FindCartItem(ctx context.Context, key CartKey) (*models.CartItem, error)
	CreateCartItem(ctx context.Context, item *models.CartItem) error
	SaveCartItem(ctx context.Context, item *models.CartItem) error
	DeleteCartItem(ctx context.Context, id uint) error
	ClearCart(ctx context.Context, sessionID string) error

	CreateOrder(ctx context.Context, o *models.Order) error
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	ListOrders(ctx context.Context, sessionID string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) error

	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint) error

	GetSession(ctx context.Context, token string) (*models.Session, error)
	SaveSession(ctx context.Context, s *models.Session) error
	DeleteSession(ctx context.Context, token string) error

	ListSettings(ctx context.Context) ([]models.Setting, error)
	UpsertSetting(ctx context.Context, key, value string) error
}
