package service

import (
	"context"
	"strings"
	"time"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/pkg/apperror"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const mirrorConflictMessage = "Transaction mirrors an order; edit the order instead"

// TransactionService handles manual cash entries. Mirrors of orders are
// read-only here and belong to SyncService.
type TransactionService struct {
	txRepo repository.TransactionRepository
	sync   *SyncService
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txRepo repository.TransactionRepository, sync *SyncService) *TransactionService {
	return &TransactionService{txRepo: txRepo, sync: sync}
}

// TransactionInput represents a manual cash entry. On update nil fields are left unchanged.
// An omitted advance means the entry is settled in full.
type TransactionInput struct {
	Name          *string
	Buy           *string
	Amount        *decimal.Decimal
	AdvanceAmount *decimal.Decimal
	Type          *enum.TransactionType
	Status        *enum.TransactionStatus
	Owner         *string
	Date          *time.Time
}

// CreateTransaction records a manual cash entry
func (s *TransactionService) CreateTransaction(ctx context.Context, input *TransactionInput) (*entity.Transaction, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Amount == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount is required"})
	}
	if input.Type == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "type", Message: "type is required"})
	}
	if input.Date == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "date is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	tx := &entity.Transaction{}
	applyTransactionInput(tx, input)

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// ListTransactions lists transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	txs, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}

// UpdateTransaction updates a manual cash entry
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, input *TransactionInput) (*entity.Transaction, error) {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.IsMirror() {
		return nil, apperror.NewConflictError(mirrorConflictMessage)
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "name cannot be empty")
	}

	applyTransactionInput(tx, input)

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// DeleteTransaction deletes a manual cash entry
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if tx.IsMirror() {
		return apperror.NewConflictError(mirrorConflictMessage)
	}
	return s.txRepo.Delete(ctx, id)
}

// Reconcile rebuilds order mirrors.
func (s *TransactionService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	return s.sync.Reconcile(ctx)
}

func applyTransactionInput(tx *entity.Transaction, input *TransactionInput) {
	if input.Name != nil {
		tx.Name = strings.TrimSpace(*input.Name)
	}
	if input.Buy != nil {
		tx.Buy = strings.TrimSpace(*input.Buy)
	}
	if input.Owner != nil {
		tx.Owner = strings.TrimSpace(*input.Owner)
	}
	if input.Type != nil {
		tx.Type = *input.Type
	}
	if input.Date != nil {
		tx.Date = input.Date.UTC()
	}

	amountChanged := input.Amount != nil
	if amountChanged {
		tx.Amount = money.Normalize(*input.Amount)
	}
	switch {
	case input.AdvanceAmount != nil:
		tx.AdvanceAmount = money.Normalize(*input.AdvanceAmount)
	case amountChanged && tx.RemainingAmount.IsZero():
		tx.AdvanceAmount = tx.Amount
	}
	tx.RemainingAmount = money.NonNegative(tx.Amount.Sub(tx.AdvanceAmount))

	// Status follows the balance unless given, and is kept on edits that leave the money alone.
	moneyChanged := amountChanged || input.AdvanceAmount != nil
	switch {
	case input.Status != nil:
		tx.Status = *input.Status
	case !moneyChanged && tx.ID != uuid.Nil:
	case tx.RemainingAmount.IsZero():
		tx.Status = enum.TransactionStatusDone
	default:
		tx.Status = enum.TransactionStatusPending
	}
}
