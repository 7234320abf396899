package repository

import (
	"context"
	"errors"

	"github.com/fazli/printshop-api/internal/domain/entity"
	domainRepo "github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type remainingRepository struct {
	db *gorm.DB
}

// NewRemainingRepository creates a new outstanding balance repository
func NewRemainingRepository(db *gorm.DB) domainRepo.RemainingRepository {
	return &remainingRepository{db: db}
}

func (r *remainingRepository) Create(ctx context.Context, record *entity.RemainingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *remainingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RemainingRecord, error) {
	var record entity.RemainingRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *remainingRepository) Update(ctx context.Context, record *entity.RemainingRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *remainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.RemainingRecord{}, "id = ?", id).Error
}

func (r *remainingRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.RemainingRecord, int64, error) {
	var records []entity.RemainingRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RemainingRecord{}).
		Scopes(ContainsFold(search, "name", "phone"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("created_at DESC").
		Find(&records).Error

	return records, total, err
}
