// Package gormstore is the relational storage.Storage backend.
package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}

func (s *Store) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	if err := s.DB.WithContext(ctx).Where("token = ?", token).First(&sess).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

func (s *Store) SaveSession(ctx context.Context, sess *models.Session) error {
	var existing models.Session
	err := s.DB.WithContext(ctx).Where("token = ?", sess.Token).First(&existing).Error
	if err == nil {
		sess.ID = existing.ID
		return s.DB.WithContext(ctx).Save(sess).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.DB.WithContext(ctx).Create(sess).Error
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	return s.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.DB.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Store) UpsertSetting(ctx context.Context, key, value string) error {
	var existing models.Setting
	err := s.DB.WithContext(ctx).Where("key = ?", key).First(&existing).Error
	if err == nil {
		existing.Value = value
		return s.DB.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.DB.WithContext(ctx).Create(&models.Setting{Key: key, Value: value}).Error
}
