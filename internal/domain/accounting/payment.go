// Package accounting holds the pure money rules of the shop: how an order's
// payment state is derived, who owns an order, and how cash views are aggregated.
// Nothing here touches storage.
package accounting

import (
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/shopspring/decimal"
)

// Payment is the derived payment state of an order.
type Payment struct {
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
	Status    enum.PaymentStatus
}

// DerivePayment computes the remaining balance and payment status.
// Inputs are normalized first, so negative values count as zero.
// Overpayment never yields a negative remainder.
func DerivePayment(amount, advance decimal.Decimal, partials []decimal.Decimal) Payment {
	amount = money.Normalize(amount)

	paid := money.Sum(append([]decimal.Decimal{advance}, partials...)...)

	remaining := money.NonNegative(amount.Sub(paid))

	status := enum.PaymentStatusUnpaid
	switch {
	case remaining.IsZero():
		status = enum.PaymentStatusPaid
	case paid.IsPositive():
		status = enum.PaymentStatusPartial
	}

	return Payment{TotalPaid: paid, Remaining: remaining, Status: status}
}
