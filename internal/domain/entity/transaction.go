package entity

import (
	"encoding/json"
	"time"

	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a cash movement. Rows with RelatedProductID set mirror an order
// and are only written by the synchronizer.
type Transaction struct {
	ID               uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	Name             string                 `gorm:"size:255;not null" json:"name"`
	Buy              string                 `gorm:"size:150" json:"buy"`
	Amount           decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	AdvanceAmount    decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	RemainingAmount  decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	Type             enum.TransactionType   `gorm:"default:0;index" json:"type"`
	Status           enum.TransactionStatus `gorm:"default:0" json:"status"`
	Owner            string                 `gorm:"size:100" json:"owner"`
	Date             time.Time              `gorm:"not null;index" json:"date"`
	RelatedProductID *uuid.UUID             `gorm:"type:uuid;index" json:"relatedProductId,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt         `gorm:"index" json:"-"`
}

// MarshalJSON renders amounts as JSON numbers.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Amount          float64 `json:"amount"`
		AdvanceAmount   float64 `json:"advanceAmount"`
		RemainingAmount float64 `json:"remainingAmount"`
	}{
		Alias:           Alias(t),
		Amount:          money.Float(t.Amount),
		AdvanceAmount:   money.Float(t.AdvanceAmount),
		RemainingAmount: money.Float(t.RemainingAmount),
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// IsMirror reports whether the transaction is linked to an order.
func (t *Transaction) IsMirror() bool {
	return t.RelatedProductID != nil && *t.RelatedProductID != uuid.Nil
}
