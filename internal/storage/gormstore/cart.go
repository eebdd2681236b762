package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

func (s *Store) GetCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store) FindCartItem(ctx context.Context, key storage.CartKey) (*models.CartItem, error) {
	q := s.DB.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", key.SessionID, key.ProductID).
		Where("selected_size = ? AND selected_fabric_category = ? AND selected_fabric = ?",
			key.SelectedSize, key.SelectedFabricCategory, key.SelectedFabric).
		Where("has_lifting_mechanism = ?", key.HasLiftingMechanism)

	if key.MatchCustomDimensions {
		q = matchNullable(q, "custom_width", key.CustomWidth)
		q = matchNullable(q, "custom_length", key.CustomLength)
	}

	var item models.CartItem
	if err := q.First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func matchNullable(q *gorm.DB, column string, v *int) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}

func (s *Store) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return s.DB.WithContext(ctx).Create(item).Error
}

func (s *Store) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return s.DB.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteCartItem(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.CartItem{}, id).Error
}

func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	return s.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error
}
