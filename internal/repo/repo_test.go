package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/db"
	"github.com/Skotchmaster/inventory/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	return &GormRepo{DB: gdb}
}

func TestFindUserByCredentials(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.CreateUser(ctx, &models.User{Username: "alice", Password: "s3cret"}))

	u, err := r.FindUserByCredentials(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	tests := []struct {
		name, username, password string
	}{
		{name: "wrong password", username: "alice", password: "nope"},
		{name: "wrong case", username: "Alice", password: "s3cret"},
		{name: "unknown user", username: "bob", password: "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.FindUserByCredentials(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		})
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateUser(ctx, &models.User{Username: "alice", Password: "a"}))
	require.Error(t, r.CreateUser(ctx, &models.User{Username: "alice", Password: "b"}))

	count, err := r.CountUsers(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateUserIfNotExists(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateUserIfNotExists(ctx, &models.User{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = r.CreateUserIfNotExists(ctx, &models.User{Username: "admin", Password: "other"})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = r.FindUserByCredentials(ctx, "admin", "admin")
	require.NoError(t, err)
}

func TestProductLifecycle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	items, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)

	first, err := r.CreateProduct(ctx, &models.Product{Name: "Widget", Description: "A widget", Price: 9.99})
	require.NoError(t, err)
	require.EqualValues(t, 1, first.ID)

	second, err := r.CreateProduct(ctx, &models.Product{Name: "Gadget", Description: "A gadget", Price: -1})
	require.NoError(t, err)
	require.EqualValues(t, 2, second.ID)

	items, err = r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, "Gadget", items[1].Name)

	updated, err := r.UpdateProduct(ctx, first.ID, "Widget 2", "Better", 0)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	got, err := r.GetProduct(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Product{ID: first.ID, Name: "Widget 2", Description: "Better", Price: 0}, *got)

	_, err = r.UpdateProduct(ctx, 99, "x", "y", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, r.DeleteProduct(ctx, first.ID))
	assert.ErrorIs(t, r.DeleteProduct(ctx, first.ID), gorm.ErrRecordNotFound)

	_, err = r.GetProduct(ctx, first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateProduct_DeletedConcurrently(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	prod, err := r.CreateProduct(ctx, &models.Product{Name: "Old", Description: "od", Price: 1})
	require.NoError(t, err)

	deleted := false
	require.NoError(t, r.DB.Callback().Update().Before("gorm:begin_transaction").
		Register("test:delete_before_update", func(tx *gorm.DB) {
			if deleted {
				return
			}
			deleted = true
			require.NoError(t, r.DB.Exec("DELETE FROM products WHERE id = ?", prod.ID).Error)
		}))

	_, err = r.UpdateProduct(ctx, prod.ID, "New", "nd", 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.True(t, deleted)

	var count int64
	require.NoError(t, r.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSearchProducts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for _, p := range []models.Product{
		{Name: "Blue Widget", Description: "round"},
		{Name: "Gadget", Description: "has a widget inside"},
		{Name: "Spanner", Description: "100% steel"},
	} {
		p := p
		_, err := r.CreateProduct(ctx, &p)
		require.NoError(t, err)
	}

	items, err := r.SearchProducts(ctx, "WIDGET", 20)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Blue Widget", items[0].Name)
	assert.Equal(t, "Gadget", items[1].Name)

	items, err = r.SearchProducts(ctx, "%", 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Spanner", items[0].Name)

	items, err = r.SearchProducts(ctx, "widget", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
