package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UncategorizedLabel is the buy label used when an order has no line items.
const UncategorizedLabel = "Uncategorized"

// Product is a customer print order. Amounts other than the advance are derived
// by the payment deriver and recomputed on every mutation.
type Product struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Name            string             `gorm:"size:255;not null" json:"name"`
	Phone           string             `gorm:"size:50;not null" json:"phone"`
	Amount          decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	AdvanceAmount   decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	RemainingAmount decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	PaymentStatus   enum.PaymentStatus `gorm:"default:0;index" json:"paymentStatus"`
	WorkStatus      enum.WorkStatus    `gorm:"default:0;index" json:"workStatus"`
	OwnerName       string             `gorm:"size:100" json:"ownerName"`
	Date            time.Time          `gorm:"not null;index" json:"date"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Buy             []BuyItem        `gorm:"foreignKey:ProductID" json:"buy"`
	PartialPayments []PartialPayment `gorm:"foreignKey:ProductID" json:"partialPayments"`
}

// MarshalJSON renders amounts as JSON numbers.
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	buy := p.Buy
	if buy == nil {
		buy = []BuyItem{}
	}
	payments := p.PartialPayments
	if payments == nil {
		payments = []PartialPayment{}
	}
	return json.Marshal(&struct {
		Alias
		Buy             []BuyItem        `json:"buy"`
		PartialPayments []PartialPayment `json:"partialPayments"`
		Amount          float64          `json:"amount"`
		AdvanceAmount   float64          `json:"advanceAmount"`
		RemainingAmount float64          `json:"remainingAmount"`
	}{
		Alias:           Alias(p),
		Buy:             buy,
		PartialPayments: payments,
		Amount:          money.Float(p.Amount),
		AdvanceAmount:   money.Float(p.AdvanceAmount),
		RemainingAmount: money.Float(p.RemainingAmount),
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Categories returns the non-empty line item categories in order.
func (p *Product) Categories() []string {
	out := make([]string, 0, len(p.Buy))
	for _, item := range p.Buy {
		if c := strings.TrimSpace(item.Category); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// PrimaryCategory is the label a product shows in cash views.
func (p *Product) PrimaryCategory() string {
	if cats := p.Categories(); len(cats) > 0 {
		return cats[0]
	}
	return UncategorizedLabel
}

// ItemsTotal sums the line item totals.
func (p *Product) ItemsTotal() decimal.Decimal {
	totals := make([]decimal.Decimal, len(p.Buy))
	for i, item := range p.Buy {
		totals[i] = item.Total
	}
	return money.Sum(totals...)
}

// HasPricedItems reports whether any line item carries a price.
func (p *Product) HasPricedItems() bool {
	for _, item := range p.Buy {
		if item.UnitPrice.IsPositive() {
			return true
		}
	}
	return false
}

// PaymentAmounts returns the partial payment amounts in order.
func (p *Product) PaymentAmounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(p.PartialPayments))
	for i, pp := range p.PartialPayments {
		out[i] = pp.Amount
	}
	return out
}

// BuyItem is one priced line of an order.
type BuyItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position  int             `gorm:"not null;default:0" json:"-"`
	Category  string          `gorm:"size:150;not null" json:"category"`
	Qty       int             `gorm:"not null;default:1" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
}

// MarshalJSON renders prices as JSON numbers.
func (b BuyItem) MarshalJSON() ([]byte, error) {
	type Alias BuyItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unitPrice"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(b),
		UnitPrice: money.Float(b.UnitPrice),
		Total:     money.Float(b.Total),
	})
}

// BeforeCreate generates a UUID before creating a new line item
func (b *BuyItem) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BuyItem model
func (BuyItem) TableName() string {
	return "product_buy_items"
}

// NewBuyItem builds a line item with its total computed.
func NewBuyItem(category string, qty int, unitPrice decimal.Decimal) BuyItem {
	if qty < 1 {
		qty = 1
	}
	unitPrice = money.Normalize(unitPrice)
	return BuyItem{
		Category:  strings.TrimSpace(category),
		Qty:       qty,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(money.Places),
	}
}

// PartialPayment is money received after the advance.
type PartialPayment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position  int             `gorm:"not null;default:0" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	Date      time.Time       `gorm:"not null" json:"date"`
}

// MarshalJSON renders the amount as a JSON number.
func (pp PartialPayment) MarshalJSON() ([]byte, error) {
	type Alias PartialPayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(pp),
		Amount: money.Float(pp.Amount),
	})
}

// BeforeCreate generates a UUID before creating a new partial payment
func (pp *PartialPayment) BeforeCreate(tx *gorm.DB) error {
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PartialPayment model
func (PartialPayment) TableName() string {
	return "product_partial_payments"
}
