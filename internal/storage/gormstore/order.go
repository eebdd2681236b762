package gormstore

import (
	"context"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return s.DB.WithContext(ctx).Create(o).Error
}

func (s *Store) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return s.DB.WithContext(ctx).Create(item).Error
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *Store) GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListOrders(ctx context.Context, sessionID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
