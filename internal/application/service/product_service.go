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

// ProductService handles order operations. Every mutation recomputes the
// derived payment fields and the owner, then refreshes the order's mirror.
type ProductService struct {
	productRepo repository.ProductRepository
	sync        *SyncService
	ownerRule   *accounting.OwnerRule
	now         func() time.Time
}

// NewProductService creates a new order service
func NewProductService(
	productRepo repository.ProductRepository,
	sync *SyncService,
	ownerRule *accounting.OwnerRule,
) *ProductService {
	if ownerRule == nil {
		ownerRule = accounting.DefaultOwnerRule()
	}
	return &ProductService{
		productRepo: productRepo,
		sync:        sync,
		ownerRule:   ownerRule,
		now:         time.Now,
	}
}

// BuyItemInput is one requested line item.
type BuyItemInput struct {
	Category  string
	Qty       int
	UnitPrice decimal.Decimal
}

// PaymentInput is one requested installment. A nil date means now.
type PaymentInput struct {
	Amount decimal.Decimal
	Date   *time.Time
}

// CreateProductInput represents the create order input
type CreateProductInput struct {
	Name            string
	Phone           string
	Buy             []BuyItemInput
	Amount          *decimal.Decimal
	AdvanceAmount   *decimal.Decimal
	PartialPayments []PaymentInput
	WorkStatus      *enum.WorkStatus
	Date            *time.Time
}

// CreateProduct creates a new order and its mirror transaction
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "phone is required"})
	}

	product := &entity.Product{
		Name:            strings.TrimSpace(input.Name),
		Phone:           strings.TrimSpace(input.Phone),
		Buy:             s.buildItems(input.Buy),
		PartialPayments: s.buildPayments(input.PartialPayments),
		WorkStatus:      enum.WorkStatusPending,
		Date:            s.now().UTC(),
	}

	if input.Amount == nil && !product.HasPricedItems() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.Amount != nil {
		product.Amount = *input.Amount
	}
	if input.AdvanceAmount != nil {
		product.AdvanceAmount = *input.AdvanceAmount
	}
	if input.WorkStatus != nil {
		product.WorkStatus = *input.WorkStatus
	}
	if input.Date != nil {
		product.Date = input.Date.UTC()
	}

	s.recompute(product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.sync.Upsert(ctx, product)
	return product, nil
}

// GetProduct retrieves an order by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists orders with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update order input. Nil fields are left unchanged;
// a non-nil Buy or PartialPayments replaces the whole list.
type UpdateProductInput struct {
	ID              uuid.UUID
	Name            *string
	Phone           *string
	Buy             []BuyItemInput
	Amount          *decimal.Decimal
	AdvanceAmount   *decimal.Decimal
	PartialPayments []PaymentInput
	WorkStatus      *enum.WorkStatus
	Date            *time.Time
}

// UpdateProduct updates an order
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name cannot be empty"})
		} else {
			product.Name = name
		}
	}
	if input.Phone != nil {
		if phone := strings.TrimSpace(*input.Phone); phone == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "phone cannot be empty"})
		} else {
			product.Phone = phone
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.Buy != nil {
		product.Buy = s.buildItems(input.Buy)
	}
	if input.Amount != nil {
		product.Amount = *input.Amount
	}
	if input.AdvanceAmount != nil {
		product.AdvanceAmount = *input.AdvanceAmount
	}
	if input.PartialPayments != nil {
		product.PartialPayments = s.buildPayments(input.PartialPayments)
	}
	if input.WorkStatus != nil {
		product.WorkStatus = *input.WorkStatus
	}
	if input.Date != nil {
		product.Date = input.Date.UTC()
	}

	return s.save(ctx, product)
}

// DeleteProduct deletes an order and every transaction mirroring it
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.sync.Remove(ctx, id)
	return nil
}

// SetWorkStatus sets the work status, or toggles it when status is nil.
func (s *ProductService) SetWorkStatus(ctx context.Context, id uuid.UUID, status *enum.WorkStatus) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if status != nil {
		product.WorkStatus = *status
	} else {
		product.WorkStatus = product.WorkStatus.Toggle()
	}

	return s.save(ctx, product)
}

// AddPayment appends an installment to the order.
func (s *ProductService) AddPayment(ctx context.Context, id uuid.UUID, input PaymentInput) (*entity.Product, error) {
	amount := money.Normalize(input.Amount)
	if !amount.IsPositive() {
		return nil, apperror.NewFieldError("amount", "amount must be greater than zero")
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	input.Amount = amount
	product.PartialPayments = append(product.PartialPayments, s.buildPayments([]PaymentInput{input})...)
	return s.save(ctx, product)
}

// MarkPaid settles whatever is still owed with a single installment dated now.
// An order that is already paid is returned unchanged.
func (s *ProductService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recompute(product)
	if !product.RemainingAmount.IsPositive() {
		return product, nil
	}

	product.PartialPayments = append(product.PartialPayments, entity.PartialPayment{
		Amount: product.RemainingAmount,
		Date:   s.now().UTC(),
	})
	return s.save(ctx, product)
}

// UndoPayment drops every installment, leaving only the advance.
func (s *ProductService) UndoPayment(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.PartialPayments = []entity.PartialPayment{}
	return s.save(ctx, product)
}

func (s *ProductService) save(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	s.recompute(product)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.sync.Upsert(ctx, product)
	return product, nil
}

// recompute applies the derived fields: amount from priced line items,
// remaining balance, payment status and owner.
func (s *ProductService) recompute(p *entity.Product) {
	if p.HasPricedItems() {
		p.Amount = p.ItemsTotal()
	}
	p.Amount = money.Normalize(p.Amount)
	p.AdvanceAmount = money.Normalize(p.AdvanceAmount)

	payment := accounting.DerivePayment(p.Amount, p.AdvanceAmount, p.PaymentAmounts())
	p.RemainingAmount = payment.Remaining
	p.PaymentStatus = payment.Status
	p.OwnerName = s.ownerRule.Assign(p.Categories())
}

func (s *ProductService) buildItems(in []BuyItemInput) []entity.BuyItem {
	items := make([]entity.BuyItem, 0, len(in))
	for _, item := range in {
		if strings.TrimSpace(item.Category) == "" {
			continue
		}
		items = append(items, entity.NewBuyItem(item.Category, item.Qty, item.UnitPrice))
	}
	return items
}

func (s *ProductService) buildPayments(in []PaymentInput) []entity.PartialPayment {
	payments := make([]entity.PartialPayment, 0, len(in))
	for _, p := range in {
		date := s.now().UTC()
		if p.Date != nil {
			date = p.Date.UTC()
		}
		payments = append(payments, entity.PartialPayment{
			Amount: money.Normalize(p.Amount),
			Date:   date,
		})
	}
	return payments
}
