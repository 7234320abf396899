package repository

import (
	"context"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for cash transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// ListAll returns every transaction in creation order.
	ListAll(ctx context.Context) ([]entity.Transaction, error)
	// FindByRelatedProductID returns the mirrors of an order, oldest first.
	FindByRelatedProductID(ctx context.Context, productID uuid.UUID) ([]entity.Transaction, error)
	// DeleteByRelatedProductID removes every mirror of an order and returns how many went.
	DeleteByRelatedProductID(ctx context.Context, productID uuid.UUID) (int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.TransactionType
	Search     string
	// ManualOnly skips rows mirrored from orders.
	ManualOnly bool
}
