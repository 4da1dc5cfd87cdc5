package repo

import (
	"context"

	"github.com/Skotchmaster/inventory/internal/models"
)

func (r *GormRepo) FindUserByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

// CreateUserIfNotExists inserts u unless a row with the same username exists.
// created reports whether a new row was written.
func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) (created bool, err error) {
	count, err := r.CountUsers(ctx, u.Username)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := r.CreateUser(ctx, u); err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepo) CountUsers(ctx context.Context, username string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
