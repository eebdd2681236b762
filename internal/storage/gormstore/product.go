package gormstore

import (
	"context"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

func (s *Store) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	return s.DB.WithContext(ctx).Save(p).Error
}

func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// SearchProducts is the fallback used when Elasticsearch is not configured.
func (s *Store) SearchProducts(ctx context.Context, query string, offset, limit int) ([]models.Product, error) {
	like := "%" + query + "%"
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("name LIKE ? OR description LIKE ?", like, like).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
