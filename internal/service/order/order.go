// Package order implements order creation with the fail-safe defaulting
// policy and the best-effort, partial-failure-tolerant item write path: the
// Order row is the durable record that a sale happened, item failures are a
// recoverable data-quality concern.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dreamnest/shop-backend/internal/logging"
	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/service/cart"
	"github.com/dreamnest/shop-backend/internal/service/catalog"
	"github.com/dreamnest/shop-backend/internal/storage"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type Service struct {
	Store storage.Storage
	Cart  *cart.Service
}

type DraftItem struct {
	ProductID              uint   `json:"product_id"`
	ProductName            string `json:"product_name"`
	Quantity               int    `json:"quantity"`
	SelectedSize           string `json:"selected_size"`
	CustomWidth            *int   `json:"custom_width"`
	CustomLength           *int   `json:"custom_length"`
	SelectedFabricCategory string `json:"selected_fabric_category"`
	SelectedFabric         string `json:"selected_fabric"`
	FabricName             string `json:"fabric_name"`
	HasLiftingMechanism    any    `json:"has_lifting_mechanism"`
	Price                  string `json:"price"`
}

type Draft struct {
	SessionID          string      `json:"session_id"`
	CustomerName       string      `json:"customer_name"`
	CustomerEmail      string      `json:"customer_email"`
	CustomerPhone      string      `json:"customer_phone"`
	Address            string      `json:"address"`
	DeliveryMethod     string      `json:"delivery_method"`
	DeliveryMethodText string      `json:"delivery_method_text"`
	DeliveryPrice      string      `json:"delivery_price"`
	PaymentMethod      string      `json:"payment_method"`
	PaymentMethodText  string      `json:"payment_method_text"`
	Comment            string      `json:"comment"`
	TotalAmount        string      `json:"total_amount"`
	Status             string      `json:"status"`
	Items              []DraftItem `json:"items"`
}

// WithItems is an order joined with its line items for API responses.
type WithItems struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}

// Create records an order. The Order row is inserted first and alone decides
// success; each item insert is then attempted independently with failures
// logged and swallowed, and the cart is cleared as a final separate step
// whose failure leaves a stale cart rather than a lost order.
func (s *Service) Create(ctx context.Context, sessionID string, draft Draft) (*WithItems, error) {
	log := logging.FromContext(ctx).With("component", "order")

	o := &models.Order{
		SessionID:          fallback(draft.SessionID, sessionID),
		CustomerName:       draft.CustomerName,
		CustomerEmail:      draft.CustomerEmail,
		CustomerPhone:      draft.CustomerPhone,
		Address:            draft.Address,
		DeliveryMethod:     draft.DeliveryMethod,
		DeliveryMethodText: draft.DeliveryMethodText,
		DeliveryPrice:      parsePrice(draft.DeliveryPrice),
		PaymentMethod:      draft.PaymentMethod,
		PaymentMethodText:  draft.PaymentMethodText,
		Comment:            draft.Comment,
		Status:             draft.Status,
	}
	if applied := applyOrderDefaults(o); len(applied) > 0 {
		log.Info("order fields defaulted", "fields", applied)
	}

	drafts := draft.Items
	fromCart := len(drafts) == 0
	if fromCart {
		lines, err := s.Cart.Items(ctx, o.SessionID)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			if line.Product == nil {
				// Product gone since the line was added; not sellable.
				log.Warn("skipping unavailable cart line", "cart_item_id", line.ID, "product_id", line.ProductID)
				continue
			}
			drafts = append(drafts, DraftItem{
				ProductID:              line.ProductID,
				Quantity:               line.Quantity,
				SelectedSize:           line.SelectedSize,
				CustomWidth:            line.CustomWidth,
				CustomLength:           line.CustomLength,
				SelectedFabricCategory: line.SelectedFabricCategory,
				SelectedFabric:         line.SelectedFabric,
				HasLiftingMechanism:    line.HasLiftingMechanism,
				Price:                  line.Price.String(),
			})
		}
	}

	items := make([]models.OrderItem, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, s.prepareItem(ctx, d))
	}

	if isMissing(draft.TotalAmount) {
		total := o.DeliveryPrice
		for _, it := range items {
			total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		o.TotalAmount = total
	} else {
		o.TotalAmount = parsePrice(draft.TotalAmount)
	}

	// The order row goes in first, outside any wrapping transaction, so a
	// later item failure cannot erase it.
	if err := s.Store.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	result := &WithItems{Order: *o}
	for i := range items {
		items[i].OrderID = o.ID
		if err := s.Store.CreateOrderItem(ctx, &items[i]); err != nil {
			log.Error("order item insert failed", "order_id", o.ID, "product_id", items[i].ProductID, "error", err)
			continue
		}
		result.Items = append(result.Items, items[i])
	}

	if err := s.Store.ClearCart(ctx, o.SessionID); err != nil {
		log.Error("cart clear after order failed", "order_id", o.ID, "session_id", o.SessionID, "error", err)
	}

	return result, nil
}

// prepareItem resolves the live product for the name snapshot and applies
// the per-field defaults. Name resolution order: catalog, caller-supplied,
// "Unknown product".
func (s *Service) prepareItem(ctx context.Context, d DraftItem) models.OrderItem {
	it := models.OrderItem{
		ProductID:              d.ProductID,
		ProductName:            d.ProductName,
		Quantity:               d.Quantity,
		SelectedSize:           d.SelectedSize,
		CustomWidth:            d.CustomWidth,
		CustomLength:           d.CustomLength,
		SelectedFabricCategory: d.SelectedFabricCategory,
		SelectedFabric:         d.SelectedFabric,
		FabricName:             d.FabricName,
		HasLiftingMechanism:    cart.NormalizeFlag(d.HasLiftingMechanism),
		Price:                  parsePrice(d.Price),
	}

	if d.ProductID != 0 {
		if p, err := s.Store.GetProduct(ctx, d.ProductID); err == nil {
			it.ProductName = p.Name
			if isMissing(it.FabricName) {
				it.FabricName = catalog.FabricName(p, it.SelectedFabric)
			}
		}
	}

	applyItemDefaults(&it)
	return it
}

func (s *Service) Get(ctx context.Context, id uint) (*WithItems, error) {
	o, err := s.Store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	items, err := s.Store.GetOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WithItems{Order: *o, Items: items}, nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]models.Order, error) {
	return s.Store.ListOrders(ctx, sessionID)
}

func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.Store.ListAllOrders(ctx)
}

// UpdateStatus replaces the status unconditionally. The status set is fixed
// but there is no transition graph; status is advisory for this domain.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	err := s.Store.UpdateOrderStatus(ctx, id, status)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	return err
}
