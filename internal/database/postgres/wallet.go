package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/repository"
)

// checkViolationCode is the postgres error code for a CHECK constraint
// violation; the wallet_accounts table enforces current_points >= 0 as the
// storage-level backstop for the affordability guard.
const checkViolationCode = "23514"

// WalletRepository implements the wallet repository for PostgreSQL
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// WalletTx implements repository.WalletTx
type WalletTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *WalletRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &WalletTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *WalletTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return fmt.Errorf("%w: %w", repository.ErrTxClosed, err)
		}
		return err
	}
	return nil
}

// Rollback rolls back the transaction
func (t *WalletTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return fmt.Errorf("%w: %w", repository.ErrTxClosed, err)
		}
		return err
	}
	return nil
}

// CreateAccount inserts a new wallet account with a zero balance.
func (r *WalletRepository) CreateAccount(ctx context.Context, account *domain.WalletAccount) error {
	query := `
		INSERT INTO wallet_accounts (account_id, role, current_points, total_earned, total_spent, created_at, updated_at)
		VALUES ($1, $2, 0, 0, 0, $3, $4)
		ON CONFLICT (account_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, account.AccountID, account.Role, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountAlreadyExists, account.AccountID)
	}
	return nil
}

// GetAccount retrieves one wallet account.
func (r *WalletRepository) GetAccount(ctx context.Context, accountID string) (*domain.WalletAccount, error) {
	return scanAccount(r.db.QueryRow(ctx, selectAccountQuery, accountID), accountID)
}

// GetAccountForUpdate reads the account inside the transaction with a row
// lock, serializing concurrent balance mutations per account.
func (t *WalletTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.WalletAccount, error) {
	return scanAccount(t.tx.QueryRow(ctx, selectAccountQuery+" FOR UPDATE", accountID), accountID)
}

const selectAccountQuery = `
	SELECT account_id, role, current_points, total_earned, total_spent, created_at, updated_at
	FROM wallet_accounts
	WHERE account_id = $1`

func scanAccount(row pgx.Row, accountID string) (*domain.WalletAccount, error) {
	var account domain.WalletAccount
	err := row.Scan(
		&account.AccountID,
		&account.Role,
		&account.CurrentPoints,
		&account.TotalEarned,
		&account.TotalSpent,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// InsertEntry appends one ledger entry. Entries are never updated or
// deleted apart from the pending status transition.
func (t *WalletTx) InsertEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (entry_id, account_id, kind, amount, category, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := t.tx.Exec(ctx, query,
		entry.EntryID,
		entry.AccountID,
		entry.Kind,
		entry.Amount,
		entry.Category,
		entry.Description,
		entry.Status,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// UpdateBalance writes the materialized balance columns. A CHECK violation
// on current_points means a concurrent writer consumed the balance first.
func (t *WalletTx) UpdateBalance(ctx context.Context, account *domain.WalletAccount) error {
	query := `
		UPDATE wallet_accounts
		SET current_points = $2, total_earned = $3, total_spent = $4, updated_at = $5
		WHERE account_id = $1
	`
	tag, err := t.tx.Exec(ctx, query,
		account.AccountID,
		account.CurrentPoints,
		account.TotalEarned,
		account.TotalSpent,
		account.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == checkViolationCode {
			return fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, err)
		}
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account.AccountID)
	}
	return nil
}

// SetEntryStatus performs the pending -> completed/failed transition. The
// WHERE clause refuses to touch settled entries; they are terminal.
func (t *WalletTx) SetEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus) error {
	query := `
		UPDATE ledger_entries
		SET status = $2
		WHERE entry_id = $1 AND status = $3
	`
	tag, err := t.tx.Exec(ctx, query, entryID, status, domain.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update entry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := t.tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE entry_id = $1)", entryID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check entry: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
		}
		return fmt.Errorf("%w: %s", domain.ErrEntrySettled, entryID)
	}
	return nil
}

// GetEntry retrieves one ledger entry.
func (r *WalletRepository) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, account_id, kind, amount, category, description, status, created_at
		FROM ledger_entries
		WHERE entry_id = $1
	`
	var entry domain.LedgerEntry
	err := r.db.QueryRow(ctx, query, entryID).Scan(
		&entry.EntryID,
		&entry.AccountID,
		&entry.Kind,
		&entry.Amount,
		&entry.Category,
		&entry.Description,
		&entry.Status,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return &entry, nil
}

// GetStalePendingEntries returns pending purchased entries older than the
// cutoff, oldest first. The partial index on status keeps this cheap.
func (r *WalletRepository) GetStalePendingEntries(ctx context.Context, cutoff time.Time, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, account_id, kind, amount, category, description, status, created_at
		FROM ledger_entries
		WHERE status = $1 AND kind = $2 AND created_at < $3
		ORDER BY created_at ASC
		LIMIT $4
	`
	rows, err := r.db.Query(ctx, query, domain.StatusPending, domain.EntryPurchased, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale pending entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.AccountID,
			&entry.Kind,
			&entry.Amount,
			&entry.Category,
			&entry.Description,
			&entry.Status,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stale pending entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stale pending entries: %w", err)
	}
	return entries, nil
}

// GetEntries retrieves ledger history based on filter criteria.
func (r *WalletRepository) GetEntries(ctx context.Context, filter repository.EntryFilter) ([]domain.LedgerEntry, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT entry_id, account_id, kind, amount, category, description, status, created_at
		FROM ledger_entries
		WHERE account_id = $1`)

	args := []interface{}{filter.AccountID}
	argNum := 2

	if filter.Kind != nil {
		fmt.Fprintf(&queryBuilder, " AND kind = $%d", argNum)
		args = append(args, *filter.Kind)
		argNum++
	}

	if filter.Category != nil {
		fmt.Fprintf(&queryBuilder, " AND category = $%d", argNum)
		args = append(args, *filter.Category)
		argNum++
	}

	if filter.Status != nil {
		fmt.Fprintf(&queryBuilder, " AND status = $%d", argNum)
		args = append(args, *filter.Status)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.AccountID,
			&entry.Kind,
			&entry.Amount,
			&entry.Category,
			&entry.Description,
			&entry.Status,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger entries: %w", err)
	}
	return entries, nil
}
