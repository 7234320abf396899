package service

import (
	"context"
	"testing"
	"time"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewDashboardService(f.txRepo, f.productRepo)

	paid := createOrder(t, f, "Ali", "1000", "1000", "Banner Printing")
	open := createOrder(t, f, "Sara", "800", "200", "Card Printing")

	// An order written without going through the service has no mirror.
	legacy := &entity.Product{
		Name: "Legacy", Phone: "0", Amount: dec("400"), AdvanceAmount: dec("100"),
		RemainingAmount: dec("300"), PaymentStatus: enum.PaymentStatusPartial,
		Date: fixedNow.Add(-24 * time.Hour),
	}
	require.NoError(t, f.productRepo.Create(ctx, legacy))

	_, err := f.txs.CreateTransaction(ctx, &TransactionInput{
		Name:   strPtr("Ink"),
		Buy:    strPtr("None"),
		Amount: decPtr("150"),
		Type:   ptrTo(enum.TransactionTypeOut),
		Date:   ptrTo(fixedNow.Add(time.Hour)),
	})
	require.NoError(t, err)

	d, err := svc.GetDashboard(ctx, accounting.FeedFilter{})
	require.NoError(t, err)
	require.Len(t, d.Items, 4)

	assert.Equal(t, "Ink", d.Items[0].Name)
	assert.Equal(t, "Legacy", d.Items[3].Name)
	assert.Equal(t, accounting.FeedSourceProduct, d.Items[3].Source)
	assert.Equal(t, entity.UncategorizedLabel, d.Items[3].Buy)

	// 1000 paid in full + 200 advance + 100 legacy advance, minus 150 expense.
	assert.True(t, d.Summary.TotalIncome.Equal(dec("1300")))
	assert.True(t, d.Summary.TotalExpense.Equal(dec("150")))
	assert.True(t, d.Summary.NetProfit.Equal(dec("1150")))
	assert.Equal(t, 3, d.Summary.TotalProducts)
	assert.Equal(t, "Banner Printing", d.Categories[0].Category)

	in := enum.TransactionTypeIn
	filtered, err := svc.GetDashboard(ctx, accounting.FeedFilter{Type: &in, Person: "sar"})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, open.ID, *filtered.Items[0].RelatedProductID)
	assert.NotEqual(t, paid.ID, *filtered.Items[0].RelatedProductID)
}
