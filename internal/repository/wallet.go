package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hirelink/points/internal/domain"
)

// ErrTxClosed is returned when an operation is attempted on a transaction
// that has already been committed or rolled back.
var ErrTxClosed = errors.New("transaction is closed")

// EntryFilter narrows ledger history queries.
type EntryFilter struct {
	AccountID string
	Kind      *domain.EntryKind
	Category  *string
	Status    *domain.EntryStatus
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Wallet defines the interface for wallet and ledger persistence. The
// wallet service is the only component that writes through it.
type Wallet interface {
	CreateAccount(ctx context.Context, account *domain.WalletAccount) error
	GetAccount(ctx context.Context, accountID string) (*domain.WalletAccount, error)
	GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	GetEntries(ctx context.Context, filter EntryFilter) ([]domain.LedgerEntry, error)

	// GetStalePendingEntries returns pending purchased entries created
	// before the cutoff, oldest first, across all accounts. The settlement
	// sweeper fails these when the payment provider never called back.
	GetStalePendingEntries(ctx context.Context, cutoff time.Time, limit int) ([]domain.LedgerEntry, error)

	BeginTx(ctx context.Context) (WalletTx, error)
}

// WalletTx defines the interface for a wallet transaction. The entry append
// and the balance mutation must commit or fail as one unit; partial states
// are never observable to other callers.
type WalletTx interface {
	// GetAccountForUpdate reads the account with a row lock so concurrent
	// debits against the same account serialize at the storage layer.
	GetAccountForUpdate(ctx context.Context, accountID string) (*domain.WalletAccount, error)

	InsertEntry(ctx context.Context, entry *domain.LedgerEntry) error

	// UpdateBalance writes current/earned/spent. Returns
	// domain.ErrConcurrencyConflict when the guarded update matched no row
	// (a concurrent writer got there first).
	UpdateBalance(ctx context.Context, account *domain.WalletAccount) error

	// SetEntryStatus performs the pending -> completed/failed transition.
	SetEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
