package service

import (
	"context"
	"strings"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/pkg/apperror"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RemainingService handles outstanding balance notes.
type RemainingService struct {
	remainingRepo repository.RemainingRepository
}

// NewRemainingService creates a new remaining balance service
func NewRemainingService(remainingRepo repository.RemainingRepository) *RemainingService {
	return &RemainingService{remainingRepo: remainingRepo}
}

// RemainingInput represents a balance note. On update nil fields are left unchanged.
type RemainingInput struct {
	Name          *string
	Phone         *string
	Amount        *decimal.Decimal
	AdvanceAmount *decimal.Decimal
	Note          *string
}

// CreateRecord stores a balance note
func (s *RemainingService) CreateRecord(ctx context.Context, input *RemainingInput) (*entity.RemainingRecord, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Phone == nil || strings.TrimSpace(*input.Phone) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "phone is required"})
	}
	if input.Amount == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	record := &entity.RemainingRecord{}
	applyRemainingInput(record, input)

	if err := s.remainingRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord retrieves a balance note by ID
func (s *RemainingService) GetRecord(ctx context.Context, id uuid.UUID) (*entity.RemainingRecord, error) {
	record, err := s.remainingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Remaining record")
	}
	return record, nil
}

// ListRecords lists balance notes, newest first
func (s *RemainingService) ListRecords(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.RemainingRecord], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	records, total, err := s.remainingRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}

// UpdateRecord updates a balance note
func (s *RemainingService) UpdateRecord(ctx context.Context, id uuid.UUID, input *RemainingInput) (*entity.RemainingRecord, error) {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "name cannot be empty")
	}

	applyRemainingInput(record, input)

	if err := s.remainingRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteRecord deletes a balance note
func (s *RemainingService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRecord(ctx, id); err != nil {
		return err
	}
	return s.remainingRepo.Delete(ctx, id)
}

func applyRemainingInput(record *entity.RemainingRecord, input *RemainingInput) {
	if input.Name != nil {
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		record.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Amount != nil {
		record.Amount = money.Normalize(*input.Amount)
	}
	if input.AdvanceAmount != nil {
		record.AdvanceAmount = money.Normalize(*input.AdvanceAmount)
	}
	if input.Note != nil {
		record.Note = strings.TrimSpace(*input.Note)
	}
	record.RemainingAmount = money.NonNegative(record.Amount.Sub(record.AdvanceAmount))
}
