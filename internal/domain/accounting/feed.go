package accounting

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeedSource tells where a feed row came from.
type FeedSource string

const (
	FeedSourceTransaction FeedSource = "transaction"
	FeedSourceProduct     FeedSource = "product"
)

// FeedItem is one row of the dashboard cash feed.
type FeedItem struct {
	ID               uuid.UUID              `json:"id"`
	Name             string                 `json:"name"`
	Buy              string                 `json:"buy"`
	Type             enum.TransactionType   `json:"type"`
	Status           enum.TransactionStatus `json:"status"`
	Owner            string                 `json:"owner"`
	Date             time.Time              `json:"date"`
	RelatedProductID *uuid.UUID             `json:"relatedProductId,omitempty"`
	Source           FeedSource             `json:"source"`
	Amount           decimal.Decimal        `json:"-"`
	AdvanceAmount    decimal.Decimal        `json:"-"`
	RemainingAmount  decimal.Decimal        `json:"-"`
}

// EffectiveAmount is the realized part of the row: everything once done, only the advance before.
func (f FeedItem) EffectiveAmount() decimal.Decimal {
	if f.Status == enum.TransactionStatusDone {
		return f.Amount
	}
	return f.AdvanceAmount
}

// IsPaid reports whether the row is fully settled.
func (f FeedItem) IsPaid() bool {
	return f.Status == enum.TransactionStatusDone
}

// MarshalJSON renders amounts as JSON numbers.
func (f FeedItem) MarshalJSON() ([]byte, error) {
	type Alias FeedItem
	return json.Marshal(&struct {
		Alias
		Amount          float64 `json:"amount"`
		AdvanceAmount   float64 `json:"advanceAmount"`
		RemainingAmount float64 `json:"remainingAmount"`
		EffectiveAmount float64 `json:"effectiveAmount"`
		IsPaid          bool    `json:"isPaid"`
	}{
		Alias:           Alias(f),
		Amount:          money.Float(f.Amount),
		AdvanceAmount:   money.Float(f.AdvanceAmount),
		RemainingAmount: money.Float(f.RemainingAmount),
		EffectiveAmount: money.Float(f.EffectiveAmount()),
		IsPaid:          f.IsPaid(),
	})
}

// StatusFor maps an order's payment status to the cash status of its rows.
func StatusFor(ps enum.PaymentStatus) enum.TransactionStatus {
	if ps == enum.PaymentStatusPaid {
		return enum.TransactionStatusDone
	}
	return enum.TransactionStatusPending
}

// BuildFeed merges transactions with orders that have no mirror row.
// A linked transaction shows its order's live state; an order without a mirror
// becomes a synthesized incoming row. Rows are sorted newest first; rows with
// equal dates keep input order, transactions before synthesized rows.
func BuildFeed(transactions []entity.Transaction, products []entity.Product) []FeedItem {
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	linked := make(map[uuid.UUID]struct{}, len(transactions))
	items := make([]FeedItem, 0, len(transactions)+len(products))

	for i := range transactions {
		t := &transactions[i]
		item := FeedItem{
			ID:               t.ID,
			Name:             t.Name,
			Buy:              t.Buy,
			Type:             t.Type,
			Status:           t.Status,
			Owner:            t.Owner,
			Date:             t.Date.UTC(),
			RelatedProductID: t.RelatedProductID,
			Source:           FeedSourceTransaction,
			Amount:           t.Amount,
			AdvanceAmount:    t.AdvanceAmount,
			RemainingAmount:  t.RemainingAmount,
		}
		if t.IsMirror() {
			linked[*t.RelatedProductID] = struct{}{}
			if p, ok := byID[*t.RelatedProductID]; ok {
				applyLiveProduct(&item, p)
			}
		}
		items = append(items, item)
	}

	for i := range products {
		p := &products[i]
		if _, ok := linked[p.ID]; ok {
			continue
		}
		id := p.ID
		item := FeedItem{
			ID:               p.ID,
			Type:             enum.TransactionTypeIn,
			RelatedProductID: &id,
			Source:           FeedSourceProduct,
		}
		applyLiveProduct(&item, p)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items
}

func applyLiveProduct(item *FeedItem, p *entity.Product) {
	item.Name = p.Name
	item.Buy = p.PrimaryCategory()
	item.Owner = p.OwnerName
	item.Date = p.Date.UTC()
	item.Amount = p.Amount
	item.AdvanceAmount = p.AdvanceAmount
	item.RemainingAmount = p.RemainingAmount
	item.Status = StatusFor(p.PaymentStatus)
}

// FeedFilter narrows the feed. Zero values match everything.
type FeedFilter struct {
	Type   *enum.TransactionType
	Person string // substring of the row name
	Owner  string // exact owner, any case
	From   string // YYYY-MM-DD, inclusive
	To     string // YYYY-MM-DD, inclusive
}

// FilterFeed keeps the rows matching f, preserving order.
func FilterFeed(items []FeedItem, f FeedFilter) []FeedItem {
	out := make([]FeedItem, 0, len(items))
	for _, item := range items {
		if f.Type != nil && item.Type != *f.Type {
			continue
		}
		if !containsFold(item.Name, f.Person) {
			continue
		}
		if f.Owner != "" && !strings.EqualFold(item.Owner, strings.TrimSpace(f.Owner)) {
			continue
		}
		// Dates are stored in UTC; drivers may hand them back in the local zone.
		if !inDateRange(item.Date.UTC().Format(entity.LedgerDateLayout), f.From, f.To) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Summary totals the realized cash of a feed.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	NetProfit     decimal.Decimal
	TotalProducts int
	Count         int
}

// MarshalJSON renders amounts as JSON numbers.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"totalIncome":   money.Float(s.TotalIncome),
		"totalExpense":  money.Float(s.TotalExpense),
		"netProfit":     money.Float(s.NetProfit),
		"totalProducts": s.TotalProducts,
		"count":         s.Count,
	})
}

// Summarize totals effective amounts by direction. TotalProducts counts the
// distinct buy labels in the feed, ignoring blanks and "None".
func Summarize(items []FeedItem) Summary {
	s := Summary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero, Count: len(items)}
	labels := make(map[string]struct{})

	for _, item := range items {
		switch item.Type {
		case enum.TransactionTypeOut:
			s.TotalExpense = s.TotalExpense.Add(item.EffectiveAmount())
		default:
			s.TotalIncome = s.TotalIncome.Add(item.EffectiveAmount())
		}
		if label := strings.TrimSpace(item.Buy); label != "" && label != "None" {
			labels[label] = struct{}{}
		}
	}

	s.NetProfit = s.TotalIncome.Sub(s.TotalExpense)
	s.TotalProducts = len(labels)
	return s
}

// CategoryTotal is the realized income of one buy label.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// MarshalJSON renders the amount as a JSON number.
func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"category": c.Category,
		"amount":   money.Float(c.Amount),
		"count":    c.Count,
	})
}

// ByCategory groups incoming rows by buy label, largest amount first.
func ByCategory(items []FeedItem) []CategoryTotal {
	index := make(map[string]int)
	out := []CategoryTotal{}
	for _, item := range items {
		if item.Type != enum.TransactionTypeIn {
			continue
		}
		label := strings.TrimSpace(item.Buy)
		if label == "" {
			label = entity.UncategorizedLabel
		}
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, CategoryTotal{Category: label, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(item.EffectiveAmount())
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// inDateRange compares ISO dates as strings, which orders them chronologically.
func inDateRange(date, from, to string) bool {
	if len(date) > len(entity.LedgerDateLayout) {
		date = date[:len(entity.LedgerDateLayout)]
	}
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
