package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/internal/events"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
)

const SearchLimit = 20

type EventPublisher interface {
	Publish(ctx context.Context, ev events.ProductEvent) error
}

type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	RemoveProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, q string, limit int) ([]models.Product, error)
}

// CatalogService owns product CRUD. Events and Index are optional; when Index
// is nil, search runs against the database.
type CatalogService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Index  ProductIndex
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return prod, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, name, description string, price float64) (*models.Product, error) {
	prod, err := s.Repo.CreateProduct(ctx, &models.Product{
		Name:        name,
		Description: description,
		Price:       price,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.afterWrite(ctx, events.ProductCreated, *prod)
	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, name, description string, price float64) (*models.Product, error) {
	prod, err := s.Repo.UpdateProduct(ctx, id, name, description, price)
	if err != nil {
		return nil, notFound(err)
	}

	s.afterWrite(ctx, events.ProductUpdated, *prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err)
	}

	s.afterWrite(ctx, events.ProductDeleted, models.Product{ID: id})
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: empty query", ErrValidation)
	}

	if s.Index == nil {
		return s.Repo.SearchProducts(ctx, q, SearchLimit)
	}

	items, err := s.Index.Search(ctx, q, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return items, nil
}

// afterWrite propagates a committed change to the index and the event stream.
// Failures are logged only; the database row is the source of truth.
func (s *CatalogService) afterWrite(ctx context.Context, t events.Type, prod models.Product) {
	l := logging.FromContext(ctx).With("svc", "catalog", "event", string(t), "product_id", prod.ID)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.Index != nil {
		var err error
		if t == events.ProductDeleted {
			err = s.Index.RemoveProduct(ctx, prod.ID)
		} else {
			err = s.Index.IndexProduct(ctx, prod)
		}
		if err != nil {
			l.Error("index_sync_error", "error", err)
		}
	}

	if s.Events != nil {
		if err := s.Events.Publish(ctx, events.NewProductEvent(t, prod)); err != nil {
			l.Error("publish_error", "error", err)
		}
	}
}
