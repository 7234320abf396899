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

// LedgerDateLayout is the stored form of LedgerEntry.Date.
const LedgerDateLayout = "2006-01-02"

// LedgerEntry is a free-standing income or expense record.
type LedgerEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Type        enum.LedgerType `gorm:"default:0;index" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"-"`
	Person      string          `gorm:"size:255" json:"person"`
	Category    string          `gorm:"size:150" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Date        string          `gorm:"size:10;not null;index" json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// MarshalJSON renders the amount as a JSON number.
func (l LedgerEntry) MarshalJSON() ([]byte, error) {
	type Alias LedgerEntry
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(l),
		Amount: money.Float(l.Amount),
	})
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (l *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
