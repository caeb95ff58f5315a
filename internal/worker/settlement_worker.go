package worker

import (
	"context"
	"time"

	"github.com/hirelink/points/internal/logger"
	"github.com/hirelink/points/internal/wallet"
)

// SettlementWorker fails pending purchases that were never settled. A
// purchase stays pending between Purchase and SettlePurchase; if the payment
// provider never calls back, the entry would sit pending forever and the
// package would look half-bought in the ledger.
type SettlementWorker struct {
	service wallet.Service
	maxAge  time.Duration
}

// NewSettlementWorker creates a sweeper that fails pending purchases older
// than maxAge.
func NewSettlementWorker(service wallet.Service, maxAge time.Duration) *SettlementWorker {
	if maxAge <= 0 {
		maxAge = DefaultPendingMaxAge
	}
	return &SettlementWorker{
		service: service,
		maxAge:  maxAge,
	}
}

// Process runs one sweep.
func (w *SettlementWorker) Process(ctx context.Context) error {
	expired, err := w.service.ExpireStalePurchases(ctx, w.maxAge)
	if err != nil {
		return err
	}
	if expired > 0 {
		logger.FromContext(ctx).Info("Settlement sweep completed", "expired", expired)
	}
	return nil
}
