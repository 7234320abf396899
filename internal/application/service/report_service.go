package service

import (
	"bytes"
	"context"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/infrastructure/export"
)

// ReportService renders the dashboard and ledger as spreadsheets.
type ReportService struct {
	dashboard *DashboardService
	ledger    *LedgerService
}

// NewReportService creates a new report service
func NewReportService(dashboard *DashboardService, ledger *LedgerService) *ReportService {
	return &ReportService{dashboard: dashboard, ledger: ledger}
}

// DashboardWorkbook exports the filtered feed and its totals.
func (s *ReportService) DashboardWorkbook(ctx context.Context, filter accounting.FeedFilter) (*bytes.Buffer, error) {
	d, err := s.dashboard.GetDashboard(ctx, filter)
	if err != nil {
		return nil, err
	}
	return export.Dashboard(d.Items, d.Summary)
}

// LedgerWorkbook exports every ledger entry matching the filter.
func (s *ReportService) LedgerWorkbook(ctx context.Context, filter accounting.LedgerFilter) (*bytes.Buffer, error) {
	entries, err := s.ledger.AllEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	return export.Ledger(entries, accounting.SummarizeLedger(entries))
}
