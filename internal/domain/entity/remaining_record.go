package entity

import (
	"encoding/json"
	"time"

	"github.com/fazli/printshop-api/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RemainingRecord notes a balance a customer still owes outside the order flow.
type RemainingRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Phone           string          `gorm:"size:50" json:"phone"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	AdvanceAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	Note            string          `gorm:"type:text" json:"note"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// MarshalJSON renders amounts as JSON numbers.
func (r RemainingRecord) MarshalJSON() ([]byte, error) {
	type Alias RemainingRecord
	return json.Marshal(&struct {
		Alias
		Amount          float64 `json:"amount"`
		AdvanceAmount   float64 `json:"advanceAmount"`
		RemainingAmount float64 `json:"remainingAmount"`
	}{
		Alias:           Alias(r),
		Amount:          money.Float(r.Amount),
		AdvanceAmount:   money.Float(r.AdvanceAmount),
		RemainingAmount: money.Float(r.RemainingAmount),
	})
}

// BeforeCreate generates a UUID before creating a new record
func (r *RemainingRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RemainingRecord model
func (RemainingRecord) TableName() string {
	return "remaining_records"
}
