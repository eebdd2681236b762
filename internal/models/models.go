package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryBed       = "bed"
	CategoryMattress  = "mattress"
	CategoryAccessory = "accessory"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// SizeOption is a selectable size of a configurable product. ID is a
// product-local code ("single", "double", "king", "custom").
type SizeOption struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

type FabricCategoryOption struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
}

// FabricOption references its FabricCategoryOption by CategoryID.
type FabricOption struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	ThumbnailURL string `json:"thumbnail_url"`
	ImageURL     string `json:"image_url"`
}

type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Product struct {
	ID                    uint                   `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name                  string                 `gorm:"not null"                    json:"name"`
	Description           string                 `json:"description"`
	Category              string                 `gorm:"index;not null"              json:"category"`
	BasePrice             decimal.Decimal        `gorm:"type:decimal(16,2);not null" json:"base_price"`
	Discount              int                    `gorm:"default:0"                   json:"discount"`
	Images                []string               `gorm:"serializer:json"             json:"images"`
	Sizes                 []SizeOption           `gorm:"serializer:json"             json:"sizes"`
	FabricCategories      []FabricCategoryOption `gorm:"serializer:json"             json:"fabric_categories"`
	Fabrics               []FabricOption         `gorm:"serializer:json"             json:"fabrics"`
	Specifications        []Specification        `gorm:"serializer:json"             json:"specifications"`
	HasLiftingMechanism   bool                   `json:"has_lifting_mechanism"`
	LiftingMechanismPrice decimal.Decimal        `gorm:"type:decimal(16,2)"          json:"lifting_mechanism_price"`
	Featured              bool                   `json:"featured"`
	InStock               bool                   `gorm:"default:true"                json:"in_stock"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// CartItem is one configured line of a session's cart. Price is the unit
// price snapshot taken when the line was first added; later catalog edits do
// not change it.
type CartItem struct {
	ID                     uint            `gorm:"primaryKey"         json:"id"`
	SessionID              string          `gorm:"index;not null"     json:"session_id"`
	ProductID              uint            `gorm:"not null"           json:"product_id"`
	Quantity               int             `gorm:"not null;default:1" json:"quantity"`
	SelectedSize           string          `json:"selected_size"`
	SelectedFabricCategory string          `json:"selected_fabric_category"`
	SelectedFabric         string          `json:"selected_fabric"`
	CustomWidth            *int            `json:"custom_width,omitempty"`
	CustomLength           *int            `json:"custom_length,omitempty"`
	HasLiftingMechanism    bool            `json:"has_lifting_mechanism"`
	Price                  decimal.Decimal `gorm:"type:decimal(16,2)" json:"price"`
	CreatedAt              time.Time       `json:"created_at"`
}

type Order struct {
	ID                 uint            `gorm:"primaryKey"         json:"id"`
	SessionID          string          `gorm:"index;not null"     json:"session_id"`
	CustomerName       string          `json:"customer_name"`
	CustomerEmail      string          `json:"customer_email"`
	CustomerPhone      string          `json:"customer_phone"`
	Address            string          `json:"address"`
	DeliveryMethod     string          `json:"delivery_method"`
	DeliveryMethodText string          `json:"delivery_method_text"`
	DeliveryPrice      decimal.Decimal `gorm:"type:decimal(16,2)" json:"delivery_price"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentMethodText  string          `json:"payment_method_text"`
	Comment            string          `json:"comment"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(16,2)" json:"total_amount"`
	Status             string          `gorm:"index;not null"     json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
}

// OrderItem keeps denormalized ProductName and FabricName snapshots so the
// order history survives later product edits and deletes.
type OrderItem struct {
	ID                     uint            `gorm:"primaryKey"         json:"id"`
	OrderID                uint            `gorm:"index;not null"     json:"order_id"`
	ProductID              uint            `json:"product_id"`
	ProductName            string          `gorm:"not null"           json:"product_name"`
	Quantity               int             `gorm:"not null;default:1" json:"quantity"`
	SelectedSize           string          `json:"selected_size"`
	CustomWidth            *int            `json:"custom_width,omitempty"`
	CustomLength           *int            `json:"custom_length,omitempty"`
	SelectedFabricCategory string          `json:"selected_fabric_category"`
	SelectedFabric         string          `json:"selected_fabric"`
	FabricName             string          `json:"fabric_name"`
	HasLiftingMechanism    bool            `json:"has_lifting_mechanism"`
	Price                  decimal.Decimal `gorm:"type:decimal(16,2)" json:"price"`
}

type User struct {
	ID           uint      `gorm:"primaryKey"      json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null"        json:"-"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	IsAdmin      bool      `gorm:"default:false"   json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session binds the opaque browser cookie token to an authenticated user.
// Anonymous visitors have no row; the token alone scopes the cart.
type Session struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    *uint     `gorm:"index"           json:"user_id,omitempty"`
	IsAdmin   bool      `gorm:"default:false"   json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Setting struct {
	ID    uint   `gorm:"primaryKey"      json:"id"`
	Key   string `gorm:"unique;not null" json:"key"`
	Value string `json:"value"`
}
