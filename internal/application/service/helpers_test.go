package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	domainRepo "github.com/fazli/printshop-api/internal/domain/repository"
	infraRepo "github.com/fazli/printshop-api/internal/infrastructure/repository"
	"github.com/fazli/printshop-api/internal/testutil"
	"github.com/fazli/printshop-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db          *gorm.DB
	productRepo domainRepo.ProductRepository
	txRepo      domainRepo.TransactionRepository
	recorder    *countingRecorder
	sync        *SyncService
	products    *ProductService
	txs         *TransactionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return newFixtureWithTxRepo(t, db, infraRepo.NewTransactionRepository(db))
}

func newFixtureWithTxRepo(t *testing.T, db *gorm.DB, txRepo domainRepo.TransactionRepository) *fixture {
	t.Helper()
	productRepo := infraRepo.NewProductRepository(db)
	recorder := &countingRecorder{failures: map[string]int{}}
	sync := NewSyncService(txRepo, productRepo, zap.NewNop(), recorder)

	products := NewProductService(productRepo, sync, accounting.DefaultOwnerRule())
	products.now = func() time.Time { return fixedNow }

	return &fixture{
		db:          db,
		productRepo: productRepo,
		txRepo:      txRepo,
		recorder:    recorder,
		sync:        sync,
		products:    products,
		txs:         NewTransactionService(txRepo, sync),
	}
}

func (f *fixture) mirrors(t *testing.T, productID uuid.UUID) []entity.Transaction {
	t.Helper()
	txs, err := f.txRepo.FindByRelatedProductID(context.Background(), productID)
	require.NoError(t, err)
	return txs
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

type countingRecorder struct {
	failures   map[string]int
	reconciles []bool
}

func (r *countingRecorder) SyncFailed(op string)      { r.failures[op]++ }
func (r *countingRecorder) ReconcileFinished(ok bool) { r.reconciles = append(r.reconciles, ok) }

// brokenTxRepo fails every mirror write while reads still work.
type brokenTxRepo struct {
	domainRepo.TransactionRepository
}

var errMirrorDown = errors.New("mirror store down")

func (brokenTxRepo) Create(context.Context, *entity.Transaction) error { return errMirrorDown }
func (brokenTxRepo) Update(context.Context, *entity.Transaction) error { return errMirrorDown }
func (brokenTxRepo) DeleteByRelatedProductID(context.Context, uuid.UUID) (int64, error) {
	return 0, errMirrorDown
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func strPtr(s string) *string { return &s }

func appCode(err error) int {
	return apperror.GetAppError(err).Code
}

func getFieldErrors(err error) []apperror.FieldError {
	return apperror.GetAppError(err).Errors
}
