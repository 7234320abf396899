package service

import (
	"context"
	"fmt"

	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncRecorder receives synchronizer outcomes. *metrics.Metrics satisfies it.
type SyncRecorder interface {
	SyncFailed(op string)
	ReconcileFinished(ok bool)
}

type nopRecorder struct{}

func (nopRecorder) SyncFailed(string)      {}
func (nopRecorder) ReconcileFinished(bool) {}

// SyncService keeps one incoming transaction per order in step with the order.
// Upsert and Remove are best effort: failures are logged and counted, never returned.
type SyncService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	log         *zap.Logger
	recorder    SyncRecorder
}

// NewSyncService creates a new synchronizer. recorder may be nil.
func NewSyncService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	log *zap.Logger,
	recorder SyncRecorder,
) *SyncService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &SyncService{
		txRepo:      txRepo,
		productRepo: productRepo,
		log:         log.Named("sync"),
		recorder:    recorder,
	}
}

// ReconcileReport describes what a reconciliation pass changed.
type ReconcileReport struct {
	Products          int `json:"products"`
	Created           int `json:"created"`
	Updated           int `json:"updated"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
	OrphansRemoved    int `json:"orphansRemoved"`
}

// Upsert overwrites the order's mirror with the order's current values, creating it if missing.
func (s *SyncService) Upsert(ctx context.Context, product *entity.Product) {
	mirrors, err := s.txRepo.FindByRelatedProductID(ctx, product.ID)
	if err != nil {
		s.fail("lookup", product.ID, err)
		return
	}

	if len(mirrors) == 0 {
		tx := &entity.Transaction{}
		applyMirror(tx, product)
		if err := s.txRepo.Create(ctx, tx); err != nil {
			s.fail("create", product.ID, err)
		}
		return
	}

	tx := &mirrors[0]
	applyMirror(tx, product)
	if err := s.txRepo.Update(ctx, tx); err != nil {
		s.fail("update", product.ID, err)
	}
}

// Remove deletes every mirror of the order.
func (s *SyncService) Remove(ctx context.Context, productID uuid.UUID) {
	n, err := s.txRepo.DeleteByRelatedProductID(ctx, productID)
	if err != nil {
		s.fail("delete", productID, err)
		return
	}
	s.log.Debug("mirrors removed", zap.String("product_id", productID.String()), zap.Int64("count", n))
}

func (s *SyncService) fail(op string, productID uuid.UUID, err error) {
	s.recorder.SyncFailed(op)
	s.log.Warn("mirror write failed",
		zap.String("op", op),
		zap.String("product_id", productID.String()),
		zap.Error(err),
	)
}

// Reconcile rebuilds the mirrors from the orders. Each order ends up with
// exactly one up to date mirror (the oldest one is kept), and mirrors of
// orders that no longer exist are removed. Running it twice changes nothing
// the second time.
func (s *SyncService) Reconcile(ctx context.Context) (report *ReconcileReport, err error) {
	defer func() {
		s.recorder.ReconcileFinished(err == nil)
	}()

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading orders: %w", err)
	}
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}

	// ListAll returns transactions oldest first, so each group starts with the keeper.
	groups := make(map[uuid.UUID][]*entity.Transaction)
	for i := range txs {
		if txs[i].IsMirror() {
			id := *txs[i].RelatedProductID
			groups[id] = append(groups[id], &txs[i])
		}
	}

	report = &ReconcileReport{Products: len(products)}

	for i := range products {
		p := &products[i]
		mirrors := groups[p.ID]
		delete(groups, p.ID)

		if len(mirrors) == 0 {
			tx := &entity.Transaction{}
			applyMirror(tx, p)
			if err := s.txRepo.Create(ctx, tx); err != nil {
				return report, fmt.Errorf("error creating mirror for %s: %w", p.ID, err)
			}
			report.Created++
			continue
		}

		keeper := mirrors[0]
		if !mirrorMatches(keeper, p) {
			applyMirror(keeper, p)
			if err := s.txRepo.Update(ctx, keeper); err != nil {
				return report, fmt.Errorf("error updating mirror for %s: %w", p.ID, err)
			}
			report.Updated++
		}

		for _, dup := range mirrors[1:] {
			if err := s.txRepo.Delete(ctx, dup.ID); err != nil {
				return report, fmt.Errorf("error removing duplicate mirror %s: %w", dup.ID, err)
			}
			report.DuplicatesRemoved++
		}
	}

	for _, orphans := range groups {
		for _, orphan := range orphans {
			if err := s.txRepo.Delete(ctx, orphan.ID); err != nil {
				return report, fmt.Errorf("error removing orphan mirror %s: %w", orphan.ID, err)
			}
			report.OrphansRemoved++
		}
	}

	s.log.Info("reconcile finished",
		zap.Int("products", report.Products),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("duplicates_removed", report.DuplicatesRemoved),
		zap.Int("orphans_removed", report.OrphansRemoved),
	)
	return report, nil
}

// applyMirror copies the mirrored fields of p onto tx.
func applyMirror(tx *entity.Transaction, p *entity.Product) {
	id := p.ID
	tx.Name = p.Name
	tx.Buy = p.PrimaryCategory()
	tx.Amount = p.Amount
	tx.AdvanceAmount = p.AdvanceAmount
	tx.RemainingAmount = p.RemainingAmount
	tx.Type = enum.TransactionTypeIn
	tx.Status = accounting.StatusFor(p.PaymentStatus)
	tx.Owner = p.OwnerName
	tx.Date = p.Date
	tx.RelatedProductID = &id
}

func mirrorMatches(tx *entity.Transaction, p *entity.Product) bool {
	return tx.Name == p.Name &&
		tx.Buy == p.PrimaryCategory() &&
		tx.Amount.Equal(p.Amount) &&
		tx.AdvanceAmount.Equal(p.AdvanceAmount) &&
		tx.RemainingAmount.Equal(p.RemainingAmount) &&
		tx.Type == enum.TransactionTypeIn &&
		tx.Status == accounting.StatusFor(p.PaymentStatus) &&
		tx.Owner == p.OwnerName &&
		tx.Date.Equal(p.Date)
}
