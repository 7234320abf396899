package repository

import (
	"context"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// RemainingRepository defines the interface for outstanding balance records
type RemainingRepository interface {
	Create(ctx context.Context, record *entity.RemainingRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RemainingRecord, error)
	Update(ctx context.Context, record *entity.RemainingRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.RemainingRecord, int64, error)
}
