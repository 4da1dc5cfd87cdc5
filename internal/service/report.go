package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/inventory/internal/repo"
)

type Report struct {
	TotalProducts   int
	TotalStockValue string
}

type ReportService struct {
	Repo *repo.GormRepo
}

func FormatCurrency(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func (s *ReportService) Summary(ctx context.Context) (*Report, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	var total float64
	for _, p := range items {
		total += p.Price
	}

	return &Report{
		TotalProducts:   len(items),
		TotalStockValue: FormatCurrency(total),
	}, nil
}
