package service

import (
	"context"
	"strings"
	"time"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/pkg/apperror"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService handles the free-standing income and expense book.
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// LedgerInput represents a ledger entry. On update nil fields are left unchanged.
type LedgerInput struct {
	Type        *enum.LedgerType
	Amount      *decimal.Decimal
	Person      *string
	Category    *string
	Description *string
	Date        *string
}

// LedgerPage is one page of entries plus the totals of everything matching the filter.
type LedgerPage struct {
	Items      []entity.LedgerEntry     `json:"items"`
	Pagination *pagination.Pagination   `json:"pagination"`
	Summary    accounting.LedgerSummary `json:"summary"`
}

// CreateEntry records a ledger entry
func (s *LedgerService) CreateEntry(ctx context.Context, input *LedgerInput) (*entity.LedgerEntry, error) {
	var fieldErrors []apperror.FieldError
	if input.Type == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "type is required"})
	}
	if input.Amount == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount is required"})
	}
	if input.Date == nil || strings.TrimSpace(*input.Date) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "date is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	entry := &entity.LedgerEntry{}
	if err := applyLedgerInput(entry, input); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry retrieves a ledger entry by ID
func (s *LedgerService) GetEntry(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Ledger entry")
	}
	return entry, nil
}

// ListEntries returns a filtered page and the summary of the whole filtered set.
func (s *LedgerService) ListEntries(ctx context.Context, filter accounting.LedgerFilter, params *pagination.PaginationParams) (*LedgerPage, error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	entries, total, err := s.ledgerRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	matched, err := s.AllEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []entity.LedgerEntry{}
	}
	return &LedgerPage{
		Items:      entries,
		Pagination: pagination.NewPagination(params.Page, params.PerPage, total),
		Summary:    accounting.SummarizeLedger(matched),
	}, nil
}

// AllEntries returns every entry matching the filter, newest first.
// The page query filters in SQL; totals and exports use the in-memory
// filter over the whole book, so both must agree on every filter.
func (s *LedgerService) AllEntries(ctx context.Context, filter accounting.LedgerFilter) ([]entity.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return accounting.FilterLedger(entries, filter), nil
}

// UpdateEntry updates a ledger entry
func (s *LedgerService) UpdateEntry(ctx context.Context, id uuid.UUID, input *LedgerInput) (*entity.LedgerEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyLedgerInput(entry, input); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry deletes a ledger entry
func (s *LedgerService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetEntry(ctx, id); err != nil {
		return err
	}
	return s.ledgerRepo.Delete(ctx, id)
}

func applyLedgerInput(entry *entity.LedgerEntry, input *LedgerInput) error {
	if input.Date != nil {
		date, err := NormalizeDate(*input.Date)
		if err != nil {
			return apperror.NewFieldError("date", "date must be YYYY-MM-DD")
		}
		entry.Date = date
	}
	if input.Type != nil {
		entry.Type = *input.Type
	}
	if input.Amount != nil {
		entry.Amount = money.Normalize(*input.Amount)
	}
	if input.Person != nil {
		entry.Person = strings.TrimSpace(*input.Person)
	}
	if input.Category != nil {
		entry.Category = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		entry.Description = strings.TrimSpace(*input.Description)
	}
	return nil
}

// NormalizeDate reduces a YYYY-MM-DD or RFC 3339 value to YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(entity.LedgerDateLayout), nil
}

// ParseDate accepts YYYY-MM-DD or RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(entity.LedgerDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
