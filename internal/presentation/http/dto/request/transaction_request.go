package request

import "github.com/fazli/printshop-api/pkg/money"

// TransactionRequest represents a manual cash entry. On update omitted fields are kept.
type TransactionRequest struct {
	Name          *string       `json:"name" binding:"omitempty,max=255"`
	Buy           *string       `json:"buy" binding:"omitempty,max=255"`
	Amount        money.Lenient `json:"amount"`
	AdvanceAmount money.Lenient `json:"advanceAmount"`
	Type          *string       `json:"type"`
	Status        *string       `json:"status"`
	Owner         *string       `json:"owner" binding:"omitempty,max=100"`
	Date          *string       `json:"date"`
}

// TransactionFilterRequest represents transaction list parameters
type TransactionFilterRequest struct {
	Type    string `form:"type"`
	Search  string `form:"search"`
	Manual  bool   `form:"manual"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// FeedFilterRequest represents dashboard feed filters
type FeedFilterRequest struct {
	Type   string `form:"type"`
	Person string `form:"person"`
	Owner  string `form:"owner"`
	From   string `form:"from"`
	To     string `form:"to"`
}
