package repository

import (
	"context"
	"errors"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	domainRepo "github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *ledgerRepository) Update(ctx context.Context, entry *entity.LedgerEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *ledgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LedgerEntry{}, "id = ?", id).Error
}

func ledgerFilterScope(f accounting.LedgerFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(ContainsFold(f.Person, "person"), DateRange("date", f.From, f.To))
		if f.Type != nil {
			db = db.Where("type = ?", *f.Type)
		}
		return db
	}
}

func (r *ledgerRepository) List(ctx context.Context, filter accounting.LedgerFilter, params *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error) {
	var entries []entity.LedgerEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LedgerEntry{}).Scopes(ledgerFilterScope(filter))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("date DESC").Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}

func (r *ledgerRepository) ListAll(ctx context.Context) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := r.db.WithContext(ctx).
		Order("date DESC").Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
