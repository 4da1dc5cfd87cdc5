package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory/internal/db"
	"github.com/Skotchmaster/inventory/internal/events"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	return &repo.GormRepo{DB: gdb}
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.ProductEvent
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, ev events.ProductEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *capturePublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type memIndex struct {
	docs      map[uint]models.Product
	searchErr error
	queries   []string
}

func newMemIndex() *memIndex {
	return &memIndex{docs: map[uint]models.Product{}}
}

func (m *memIndex) IndexProduct(_ context.Context, p models.Product) error {
	m.docs[p.ID] = p
	return nil
}

func (m *memIndex) RemoveProduct(_ context.Context, id uint) error {
	delete(m.docs, id)
	return nil
}

func (m *memIndex) Search(_ context.Context, q string, _ int) ([]models.Product, error) {
	m.queries = append(m.queries, q)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	out := make([]models.Product, 0, len(m.docs))
	for _, p := range m.docs {
		out = append(out, p)
	}
	return out, nil
}

var errBroker = errors.New("broker down")
