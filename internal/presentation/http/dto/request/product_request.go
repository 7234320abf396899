package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fazli/printshop-api/pkg/money"
)

// BuyItemRequest is one line item of an order.
type BuyItemRequest struct {
	Category  string        `json:"category"`
	Qty       int           `json:"qty" binding:"min=0"`
	UnitPrice money.Lenient `json:"unitPrice"`
}

// BuyList decodes the buy field. Besides a list of line items it accepts the
// older shapes: a single label or a list of labels, each becoming an unpriced item.
type BuyList []BuyItemRequest

// UnmarshalJSON implements json.Unmarshaler.
func (b *BuyList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*b = BuyList{{Category: label, Qty: 1}}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("buy must be a label or a list: %w", err)
	}

	items := make(BuyList, 0, len(raw))
	for _, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) > 0 && elem[0] == '"' {
			var label string
			if err := json.Unmarshal(elem, &label); err != nil {
				return err
			}
			items = append(items, BuyItemRequest{Category: label, Qty: 1})
			continue
		}
		var item BuyItemRequest
		if err := json.Unmarshal(elem, &item); err != nil {
			return fmt.Errorf("invalid buy item: %w", err)
		}
		items = append(items, item)
	}
	*b = items
	return nil
}

// PaymentRequest is one installment. Date is YYYY-MM-DD or RFC 3339; omitted means now.
type PaymentRequest struct {
	Amount money.Lenient `json:"amount"`
	Date   *string       `json:"date"`
}

// CreateProductRequest represents an order creation request
type CreateProductRequest struct {
	Name            string           `json:"name" binding:"max=255"`
	Phone           string           `json:"phone" binding:"max=50"`
	Buy             BuyList          `json:"buy" binding:"dive"`
	Amount          money.Lenient    `json:"amount"`
	AdvanceAmount   money.Lenient    `json:"advanceAmount"`
	PartialPayments []PaymentRequest `json:"partialPayments"`
	WorkStatus      *string          `json:"workStatus"`
	Date            *string          `json:"date"`
}

// UpdateProductRequest represents an order update request. Omitted fields are kept.
type UpdateProductRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=255"`
	Phone           *string          `json:"phone" binding:"omitempty,max=50"`
	Buy             BuyList          `json:"buy" binding:"omitempty,dive"`
	Amount          money.Lenient    `json:"amount"`
	AdvanceAmount   money.Lenient    `json:"advanceAmount"`
	PartialPayments []PaymentRequest `json:"partialPayments"`
	WorkStatus      *string          `json:"workStatus"`
	Date            *string          `json:"date"`
}

// WorkStatusRequest sets the work status. An empty body toggles it.
type WorkStatusRequest struct {
	Status *string `json:"status"`
}

// ProductFilterRequest represents order filter parameters
type ProductFilterRequest struct {
	Search        string `form:"search"`
	PaymentStatus string `form:"payment_status"`
	WorkStatus    string `form:"work_status"`
	Owner         string `form:"owner"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
