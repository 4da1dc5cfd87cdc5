package bootstrap

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/db"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin"
)

// Run prepares a store for serving: tables are created if missing and the
// admin user is inserted once. Safe to call on every start.
func Run(ctx context.Context, gdb *gorm.DB) error {
	l := logging.FromContext(ctx).With("component", "bootstrap")

	if err := db.Migrate(ctx, gdb); err != nil {
		return err
	}

	r := &repo.GormRepo{DB: gdb}
	created, err := r.CreateUserIfNotExists(ctx, &models.User{
		Username: AdminUsername,
		Password: AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}

	if created {
		l.Info("admin_user_created")
	} else {
		l.Debug("admin_user_exists")
	}
	return nil
}
