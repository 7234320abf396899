package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/fazli/printshop-api/internal/domain/enum"
	domainRepo "github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction_Defaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	settled, err := f.txs.CreateTransaction(ctx, &TransactionInput{
		Name:   strPtr(" Ink "),
		Amount: decPtr("120"),
		Type:   ptrTo(enum.TransactionTypeOut),
		Date:   &fixedNow,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ink", settled.Name)
	assert.True(t, settled.AdvanceAmount.Equal(dec("120")))
	assert.True(t, settled.RemainingAmount.IsZero())
	assert.Equal(t, enum.TransactionStatusDone, settled.Status)
	assert.False(t, settled.IsMirror())

	open, err := f.txs.CreateTransaction(ctx, &TransactionInput{
		Name:          strPtr("Walk-in"),
		Amount:        decPtr("1000"),
		AdvanceAmount: decPtr("250"),
		Type:          ptrTo(enum.TransactionTypeIn),
		Date:          &fixedNow,
	})
	require.NoError(t, err)
	assert.True(t, open.RemainingAmount.Equal(dec("750")))
	assert.Equal(t, enum.TransactionStatusPending, open.Status)
}

func TestCreateTransaction_RequiresFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.txs.CreateTransaction(context.Background(), &TransactionInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(err))
	assert.Len(t, getFieldErrors(err), 4)
}

func TestUpdateTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.txs.CreateTransaction(ctx, &TransactionInput{
		Name:   strPtr("Rent"),
		Amount: decPtr("5000"),
		Type:   ptrTo(enum.TransactionTypeOut),
		Status: ptrTo(enum.TransactionStatusPending),
		Date:   &fixedNow,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionStatusPending, tx.Status)

	tx, err = f.txs.UpdateTransaction(ctx, tx.ID, &TransactionInput{Name: strPtr("Shop rent")})
	require.NoError(t, err)
	assert.Equal(t, "Shop rent", tx.Name)
	assert.Equal(t, enum.TransactionStatusPending, tx.Status)

	tx, err = f.txs.UpdateTransaction(ctx, tx.ID, &TransactionInput{AdvanceAmount: decPtr("2000")})
	require.NoError(t, err)
	assert.True(t, tx.RemainingAmount.Equal(dec("3000")))
	assert.Equal(t, enum.TransactionStatusPending, tx.Status)

	tx, err = f.txs.UpdateTransaction(ctx, tx.ID, &TransactionInput{AdvanceAmount: decPtr("5000")})
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionStatusDone, tx.Status)
}

func TestMirrorTransactions_AreReadOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := createOrder(t, f, "Ali", "800", "200")
	mirror := f.mirrors(t, p.ID)[0]

	_, err := f.txs.UpdateTransaction(ctx, mirror.ID, &TransactionInput{Name: strPtr("x")})
	assert.Equal(t, http.StatusConflict, appCode(err))

	err = f.txs.DeleteTransaction(ctx, mirror.ID)
	assert.Equal(t, http.StatusConflict, appCode(err))
	assert.Len(t, f.mirrors(t, p.ID), 1)
}

func TestListTransactions_ManualOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createOrder(t, f, "Ali", "800", "200")
	_, err := f.txs.CreateTransaction(ctx, &TransactionInput{
		Name:   strPtr("Ink"),
		Amount: decPtr("120"),
		Type:   ptrTo(enum.TransactionTypeOut),
		Date:   &fixedNow,
	})
	require.NoError(t, err)

	all, err := f.txs.ListTransactions(ctx, &domainRepo.TransactionFilterParams{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	manual, err := f.txs.ListTransactions(ctx, &domainRepo.TransactionFilterParams{ManualOnly: true})
	require.NoError(t, err)
	require.Len(t, manual.Items, 1)
	assert.Equal(t, "Ink", manual.Items[0].Name)

	require.NoError(t, f.txs.DeleteTransaction(ctx, manual.Items[0].ID))
	_, err = f.txs.GetTransaction(ctx, manual.Items[0].ID)
	assert.Equal(t, http.StatusNotFound, appCode(err))
}
