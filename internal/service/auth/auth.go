package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dreamnest/shop-backend/internal/hash"
	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

var (
	ErrValidation   = errors.New("validation")
	ErrUnauthorized = errors.New("unauthorized")
)

type Service struct {
	Store storage.Storage
}

func (s *Service) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	if _, err := s.Store.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrValidation)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Email:        email,
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return user, nil
}

// Bind attaches an authenticated user to the browser session token.
func (s *Service) Bind(ctx context.Context, token string, user *models.User) error {
	return s.Store.SaveSession(ctx, &models.Session{
		Token:   token,
		UserID:  &user.ID,
		IsAdmin: user.IsAdmin,
	})
}

// Unbind drops the user binding; the token itself stays valid for the
// anonymous cart.
func (s *Service) Unbind(ctx context.Context, token string) error {
	return s.Store.DeleteSession(ctx, token)
}
