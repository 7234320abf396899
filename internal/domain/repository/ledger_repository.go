package repository

import (
	"context"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// LedgerRepository defines the interface for ledger entry data operations
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error)
	Update(ctx context.Context, entry *entity.LedgerEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page of matching entries, newest date first.
	List(ctx context.Context, filter accounting.LedgerFilter, params *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error)
	// ListAll returns every entry, newest date first.
	ListAll(ctx context.Context) ([]entity.LedgerEntry, error)
}
