package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/enum"
	infraRepo "github.com/fazli/printshop-api/internal/infrastructure/repository"
	"github.com/fazli/printshop-api/internal/testutil"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerService(t *testing.T) *LedgerService {
	return NewLedgerService(infraRepo.NewLedgerRepository(testutil.NewDB(t)))
}

func TestCreateEntry(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, &LedgerInput{
		Type:   ptrTo(enum.LedgerTypeIncome),
		Amount: decPtr("250.456"),
		Person: strPtr(" Hamid "),
		Date:   strPtr("2025-03-01T18:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", entry.Date)
	assert.Equal(t, "Hamid", entry.Person)
	assert.True(t, entry.Amount.Equal(dec("250.46")))

	_, err = svc.CreateEntry(ctx, &LedgerInput{})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(err))
	assert.Len(t, getFieldErrors(err), 3)

	_, err = svc.CreateEntry(ctx, &LedgerInput{
		Type:   ptrTo(enum.LedgerTypeExpense),
		Amount: decPtr("10"),
		Date:   strPtr("03/01/2025"),
	})
	require.Error(t, err)
	assert.Equal(t, "date", getFieldErrors(err)[0].Field)
}

func TestListEntries_SummaryCoversWholeFilter(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	for _, e := range []struct {
		typ    enum.LedgerType
		amount string
		person string
		date   string
	}{
		{enum.LedgerTypeIncome, "500", "Hamid", "2025-03-01"},
		{enum.LedgerTypeExpense, "120", "Hamid", "2025-03-02"},
		{enum.LedgerTypeIncome, "300", "Bilal", "2025-03-03"},
		{enum.LedgerTypeIncome, "80", "hamid", "2025-04-01"},
	} {
		_, err := svc.CreateEntry(ctx, &LedgerInput{
			Type: ptrTo(e.typ), Amount: decPtr(e.amount), Person: strPtr(e.person), Date: strPtr(e.date),
		})
		require.NoError(t, err)
	}

	page, err := svc.ListEntries(ctx, accounting.LedgerFilter{Person: "HAMID", To: "2025-03-31"}, &pagination.PaginationParams{Page: 1, PerPage: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2025-03-02", page.Items[0].Date)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 2, page.Summary.Count)
	assert.True(t, page.Summary.Income.Equal(dec("500")))
	assert.True(t, page.Summary.Expense.Equal(dec("120")))
	assert.True(t, page.Summary.Balance.Equal(dec("380")))

	income := enum.LedgerTypeIncome
	for _, f := range []accounting.LedgerFilter{
		{},
		{Person: "hamid"},
		{Type: &income, From: "2025-03-02"},
		{From: "2025-03-03", To: "2025-03-03"},
		{Person: "nobody"},
	} {
		page, err := svc.ListEntries(ctx, f, &pagination.PaginationParams{Page: 1, PerPage: 2})
		require.NoError(t, err)
		assert.EqualValues(t, page.Pagination.Total, page.Summary.Count, "filter %+v", f)

		exported, err := svc.AllEntries(ctx, f)
		require.NoError(t, err)
		assert.Len(t, exported, page.Summary.Count)
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, &LedgerInput{
		Type: ptrTo(enum.LedgerTypeIncome), Amount: decPtr("10"), Date: strPtr("2025-03-01"),
	})
	require.NoError(t, err)

	entry, err = svc.UpdateEntry(ctx, entry.ID, &LedgerInput{Type: ptrTo(enum.LedgerTypeExpense), Category: strPtr("Supplies")})
	require.NoError(t, err)
	assert.Equal(t, enum.LedgerTypeExpense, entry.Type)
	assert.Equal(t, "Supplies", entry.Category)
	assert.Equal(t, "2025-03-01", entry.Date)

	require.NoError(t, svc.DeleteEntry(ctx, entry.ID))
	assert.Equal(t, http.StatusNotFound, appCode(svc.DeleteEntry(ctx, entry.ID)))

	_, err = svc.UpdateEntry(ctx, uuid.New(), &LedgerInput{})
	assert.Equal(t, http.StatusNotFound, appCode(err))
}
