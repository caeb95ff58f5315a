package repository

import (
	"context"
	"errors"

	"github.com/hirelink/points/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't a
// closed-transaction error (the normal case after a successful commit).
func SafeRollback(ctx context.Context, tx WalletTx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
