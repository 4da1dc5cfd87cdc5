package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
)

type AuthService struct {
	Repo *repo.GormRepo
}

// Login checks the pair against the stored plaintext credentials. It issues
// nothing; a nil error only means the pair matched.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if _, err := s.Repo.FindUserByCredentials(ctx, username, password); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "invalid username or password")
			return ErrInvalidCredentials
		}
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}

func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{
		Username: username,
		Password: password,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
