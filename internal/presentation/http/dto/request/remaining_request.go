package request

import "github.com/fazli/printshop-api/pkg/money"

// RemainingRequest represents a balance note. On update omitted fields are kept.
type RemainingRequest struct {
	Name          *string       `json:"name" binding:"omitempty,max=255"`
	Phone         *string       `json:"phone" binding:"omitempty,max=50"`
	Amount        money.Lenient `json:"amount"`
	AdvanceAmount money.Lenient `json:"advanceAmount"`
	Note          *string       `json:"note"`
}

// RemainingFilterRequest represents balance note list parameters
type RemainingFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
