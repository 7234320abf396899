package repository

import (
	"context"
	"errors"

	"github.com/fazli/printshop-api/internal/domain/entity"
	domainRepo "github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Transaction{}, "id = ?", id).Error
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txs []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(ContainsFold(params.Search, "name", "buy"))

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.ManualOnly {
		query = query.Where("related_product_id IS NULL")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("date DESC").Order("created_at DESC").
		Find(&txs).Error

	return txs, total, err
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) FindByRelatedProductID(ctx context.Context, productID uuid.UUID) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("related_product_id = ?", productID).
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) DeleteByRelatedProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("related_product_id = ?", productID).
		Delete(&entity.Transaction{})
	return result.RowsAffected, result.Error
}
