package request

import "github.com/fazli/printshop-api/pkg/money"

// LedgerRequest represents a ledger entry. On update omitted fields are kept.
type LedgerRequest struct {
	Type        *string       `json:"type"`
	Amount      money.Lenient `json:"amount"`
	Person      *string       `json:"person" binding:"omitempty,max=255"`
	Category    *string       `json:"category" binding:"omitempty,max=255"`
	Description *string       `json:"description"`
	Date        *string       `json:"date"`
}

// LedgerFilterRequest represents ledger list parameters
type LedgerFilterRequest struct {
	Person  string `form:"person"`
	Type    string `form:"type"`
	From    string `form:"from"`
	To      string `form:"to"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
