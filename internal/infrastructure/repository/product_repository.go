package repository

import (
	"context"
	"errors"

	"github.com/fazli/printshop-api/internal/domain/entity"
	domainRepo "github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new order repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func withChildren(db *gorm.DB) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }
	return db.Preload("Buy", byPosition).Preload("PartialPayments", byPosition)
}

// prepareChildren numbers line items and payments and detaches them from old rows.
func prepareChildren(p *entity.Product) {
	for i := range p.Buy {
		p.Buy[i].ID = uuid.Nil
		p.Buy[i].ProductID = p.ID
		p.Buy[i].Position = i
	}
	for i := range p.PartialPayments {
		p.PartialPayments[i].ID = uuid.Nil
		p.PartialPayments[i].ProductID = p.ID
		p.PartialPayments[i].Position = i
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		return r.createChildren(tx, product)
	})
}

func (r *productRepository) createChildren(tx *gorm.DB, product *entity.Product) error {
	prepareChildren(product)
	if len(product.Buy) > 0 {
		if err := tx.Create(&product.Buy).Error; err != nil {
			return err
		}
	}
	if len(product.PartialPayments) > 0 {
		if err := tx.Create(&product.PartialPayments).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Scopes(withChildren).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// Update saves the order and replaces its line items and payments.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&entity.BuyItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&entity.PartialPayment{}).Error; err != nil {
			return err
		}
		return r.createChildren(tx, product)
	})
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(ContainsFold(params.Search, "name", "phone"))

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.WorkStatus != nil {
		query = query.Where("work_status = ?", *params.WorkStatus)
	}
	if params.Owner != "" {
		query = query.Where("owner_name = ?", params.Owner)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination), withChildren).
		Order("date DESC").Order("created_at DESC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Scopes(withChildren).
		Order("created_at ASC").
		Find(&products).Error
	return products, err
}
