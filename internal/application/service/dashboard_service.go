package service

import (
	"context"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/repository"
)

// DashboardService builds the cash feed shown on the dashboard.
type DashboardService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		txRepo:      txRepo,
		productRepo: productRepo,
	}
}

// Dashboard is the filtered feed with its totals.
type Dashboard struct {
	Items      []accounting.FeedItem      `json:"items"`
	Summary    accounting.Summary         `json:"summary"`
	Categories []accounting.CategoryTotal `json:"categories"`
}

// GetDashboard merges transactions with unmirrored orders, applies the filter and totals the result.
func (s *DashboardService) GetDashboard(ctx context.Context, filter accounting.FeedFilter) (*Dashboard, error) {
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	items := accounting.FilterFeed(accounting.BuildFeed(txs, products), filter)
	return &Dashboard{
		Items:      items,
		Summary:    accounting.Summarize(items),
		Categories: accounting.ByCategory(items),
	}, nil
}
