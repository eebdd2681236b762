package gormstore

import (
	"context"

	"github.com/dreamnest/shop-backend/internal/models"
)

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.DB.WithContext(ctx).Create(u).Error
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	return s.DB.WithContext(ctx).Save(u).Error
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.User{}, id).Error
}
