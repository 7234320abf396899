package accounting

import (
	"encoding/json"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/shopspring/decimal"
)

// LedgerFilter narrows ledger entries. Zero values match everything.
type LedgerFilter struct {
	Person string
	Type   *enum.LedgerType
	From   string // YYYY-MM-DD, inclusive
	To     string // YYYY-MM-DD, inclusive
}

// Match reports whether e passes the filter.
func (f LedgerFilter) Match(e entity.LedgerEntry) bool {
	if f.Type != nil && e.Type != *f.Type {
		return false
	}
	if !containsFold(e.Person, f.Person) {
		return false
	}
	return inDateRange(e.Date, f.From, f.To)
}

// FilterLedger keeps the matching entries, preserving order.
func FilterLedger(entries []entity.LedgerEntry, f LedgerFilter) []entity.LedgerEntry {
	out := make([]entity.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// LedgerSummary totals ledger entries.
type LedgerSummary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Count   int
}

// MarshalJSON renders amounts as JSON numbers.
func (s LedgerSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"income":  money.Float(s.Income),
		"expense": money.Float(s.Expense),
		"balance": money.Float(s.Balance),
		"count":   s.Count,
	})
}

// SummarizeLedger adds up income and expense.
func SummarizeLedger(entries []entity.LedgerEntry) LedgerSummary {
	s := LedgerSummary{Income: decimal.Zero, Expense: decimal.Zero, Count: len(entries)}
	for _, e := range entries {
		amount := money.Normalize(e.Amount)
		if e.Type == enum.LedgerTypeExpense {
			s.Expense = s.Expense.Add(amount)
		} else {
			s.Income = s.Income.Add(amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}
