// Package cart implements the session cart and its line-identity contract:
// two additions merge into one line exactly when session, product, size,
// fabric category, fabric and the normalized lifting-mechanism flag all
// match.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/service/catalog"
	"github.com/dreamnest/shop-backend/internal/storage"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type Service struct {
	Store storage.Storage

	// MatchCustomDimensions widens the line identity with custom
	// width/length. The legacy behavior (off) merges two custom-size
	// additions with different dimensions into one line.
	MatchCustomDimensions bool
}

// AddRequest is one "add to cart" submission. HasLiftingMechanism is
// deliberately untyped: call sites send it as a bool, a string or not at
// all, and all three must normalize to the same strict bool before the
// identity comparison. Price, when present, becomes the line's stored unit
// price snapshot; otherwise the catalog price for the chosen configuration
// is snapshotted.
type AddRequest struct {
	ProductID              uint   `json:"product_id"`
	Quantity               int    `json:"quantity"`
	SelectedSize           string `json:"selected_size"`
	SelectedFabricCategory string `json:"selected_fabric_category"`
	SelectedFabric         string `json:"selected_fabric"`
	CustomWidth            *int   `json:"custom_width"`
	CustomLength           *int   `json:"custom_length"`
	HasLiftingMechanism    any    `json:"has_lifting_mechanism"`
	Price                  any    `json:"price"`
}

// Line is a cart item enriched with its current catalog product. Product is
// nil when the product has been deleted since the line was added; such lines
// are rendered as unavailable and excluded from checkout totals.
type Line struct {
	models.CartItem
	Product *models.Product `json:"product"`
}

// NormalizeFlag coerces a loosely-typed lifting-mechanism value to a strict
// bool. Comparing the raw values instead would leave absent != false and
// split what should be one line into duplicates.
func NormalizeFlag(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

// parsePrice accepts the unit price as either a decimal string or a JSON
// number. A missing or malformed value reports !ok and the caller falls back
// to the catalog price.
func parsePrice(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	default:
		return decimal.Zero, false
	}
}

func (s *Service) Add(ctx context.Context, sessionID string, req AddRequest) (*models.CartItem, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := s.Store.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, req.ProductID)
		}
		return nil, err
	}

	lifting := NormalizeFlag(req.HasLiftingMechanism)

	key := storage.CartKey{
		SessionID:              sessionID,
		ProductID:              req.ProductID,
		SelectedSize:           req.SelectedSize,
		SelectedFabricCategory: req.SelectedFabricCategory,
		SelectedFabric:         req.SelectedFabric,
		HasLiftingMechanism:    lifting,
		CustomWidth:            req.CustomWidth,
		CustomLength:           req.CustomLength,
		MatchCustomDimensions:  s.MatchCustomDimensions,
	}

	existing, err := s.Store.FindCartItem(ctx, key)
	if err == nil {
		// Merge: bump quantity, keep the first-add price snapshot.
		existing.Quantity += req.Quantity
		if err := s.Store.SaveCartItem(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	price, ok := parsePrice(req.Price)
	if !ok {
		price = catalog.UnitPrice(product, req.SelectedSize, req.SelectedFabricCategory, lifting)
	}

	item := &models.CartItem{
		SessionID:              sessionID,
		ProductID:              req.ProductID,
		Quantity:               req.Quantity,
		SelectedSize:           req.SelectedSize,
		SelectedFabricCategory: req.SelectedFabricCategory,
		SelectedFabric:         req.SelectedFabric,
		CustomWidth:            req.CustomWidth,
		CustomLength:           req.CustomLength,
		HasLiftingMechanism:    lifting,
		Price:                  price,
	}
	if err := s.Store.CreateCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Items(ctx context.Context, sessionID string) ([]Line, error) {
	items, err := s.Store.GetCartItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		line := Line{CartItem: it}
		if p, err := s.Store.GetProduct(ctx, it.ProductID); err == nil {
			line.Product = p
		} else if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Update patches a line after verifying it belongs to the caller's session.
// A line owned by another session is indistinguishable from a missing one.
type Update struct {
	Quantity               *int    `json:"quantity"`
	SelectedSize           *string `json:"selected_size"`
	SelectedFabricCategory *string `json:"selected_fabric_category"`
	SelectedFabric         *string `json:"selected_fabric"`
	CustomWidth            *int    `json:"custom_width"`
	CustomLength           *int    `json:"custom_length"`
	HasLiftingMechanism    any     `json:"has_lifting_mechanism"`
}

func (s *Service) Update(ctx context.Context, sessionID string, id uint, upd Update) (*models.CartItem, error) {
	item, err := s.Store.GetCartItem(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, id)
		}
		return nil, err
	}
	if item.SessionID != sessionID {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, id)
	}

	if upd.Quantity != nil {
		if *upd.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
		item.Quantity = *upd.Quantity
	}
	if upd.SelectedSize != nil {
		item.SelectedSize = *upd.SelectedSize
	}
	if upd.SelectedFabricCategory != nil {
		item.SelectedFabricCategory = *upd.SelectedFabricCategory
	}
	if upd.SelectedFabric != nil {
		item.SelectedFabric = *upd.SelectedFabric
	}
	if upd.CustomWidth != nil {
		item.CustomWidth = upd.CustomWidth
	}
	if upd.CustomLength != nil {
		item.CustomLength = upd.CustomLength
	}
	if upd.HasLiftingMechanism != nil {
		item.HasLiftingMechanism = NormalizeFlag(upd.HasLiftingMechanism)
	}

	if err := s.Store.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes a session's line. Removing an id that is already gone is a
// success; an id owned by another session is NotFound and left untouched.
func (s *Service) Remove(ctx context.Context, sessionID string, id uint) error {
	item, err := s.Store.GetCartItem(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	if item.SessionID != sessionID {
		return fmt.Errorf("%w: cart item %d", ErrNotFound, id)
	}
	return s.Store.DeleteCartItem(ctx, id)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.Store.ClearCart(ctx, sessionID)
}
