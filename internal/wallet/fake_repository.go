package wallet

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/repository"
)

// FakeRepository is an in-memory repository.Wallet used by tests and by the
// mock-backed development mode. It honours the same contract as the
// postgres implementation: a transaction's writes become visible atomically
// on Commit and not at all on Rollback.
type FakeRepository struct {
	mu       sync.Mutex
	accounts map[string]domain.WalletAccount
	entries  map[string]domain.LedgerEntry
	order    []string
}

// NewFakeRepository creates an empty in-memory repository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		accounts: make(map[string]domain.WalletAccount),
		entries:  make(map[string]domain.LedgerEntry),
	}
}

func (r *FakeRepository) CreateAccount(_ context.Context, account *domain.WalletAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrAccountAlreadyExists, account.AccountID)
	}
	r.accounts[account.AccountID] = *account
	return nil
}

func (r *FakeRepository) GetAccount(_ context.Context, accountID string) (*domain.WalletAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return &account, nil
}

func (r *FakeRepository) GetEntry(_ context.Context, entryID string) (*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
	}
	return &entry, nil
}

func (r *FakeRepository) GetEntries(_ context.Context, filter repository.EntryFilter) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.LedgerEntry
	for _, id := range r.order {
		entry := r.entries[id]
		if entry.AccountID != filter.AccountID {
			continue
		}
		if filter.Kind != nil && entry.Kind != *filter.Kind {
			continue
		}
		if filter.Category != nil && entry.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && entry.Status != *filter.Status {
			continue
		}
		if filter.Since != nil && entry.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && entry.CreatedAt.After(*filter.Until) {
			continue
		}
		out = append(out, entry)
	}

	// Newest first, like the SQL ORDER BY created_at DESC.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *FakeRepository) GetStalePendingEntries(_ context.Context, cutoff time.Time, limit int) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.LedgerEntry
	for _, id := range r.order {
		entry := r.entries[id]
		if entry.Status != domain.StatusPending || entry.Kind != domain.EntryPurchased {
			continue
		}
		if !entry.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, entry)
	}

	// Oldest first so the sweeper drains the backlog in order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// BeginTx holds the repository lock until Commit or Rollback so the whole
// transaction is one critical section.
func (r *FakeRepository) BeginTx(_ context.Context) (repository.WalletTx, error) {
	r.mu.Lock()
	return &fakeTx{repo: r}, nil
}

type fakeTx struct {
	repo   *FakeRepository
	closed bool

	stagedAccount *domain.WalletAccount
	stagedEntries []domain.LedgerEntry
	stagedStatus  map[string]domain.EntryStatus
}

func (t *fakeTx) GetAccountForUpdate(_ context.Context, accountID string) (*domain.WalletAccount, error) {
	if t.closed {
		return nil, repository.ErrTxClosed
	}
	account, ok := t.repo.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return &account, nil
}

func (t *fakeTx) InsertEntry(_ context.Context, entry *domain.LedgerEntry) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.stagedEntries = append(t.stagedEntries, *entry)
	return nil
}

func (t *fakeTx) UpdateBalance(_ context.Context, account *domain.WalletAccount) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	copied := *account
	t.stagedAccount = &copied
	return nil
}

func (t *fakeTx) SetEntryStatus(_ context.Context, entryID string, status domain.EntryStatus) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	entry, ok := t.repo.entries[entryID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
	}
	if entry.Status != domain.StatusPending {
		return fmt.Errorf("%w: %s", domain.ErrEntrySettled, entryID)
	}
	if t.stagedStatus == nil {
		t.stagedStatus = make(map[string]domain.EntryStatus)
	}
	t.stagedStatus[entryID] = status
	return nil
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	for _, entry := range t.stagedEntries {
		t.repo.entries[entry.EntryID] = entry
		t.repo.order = append(t.repo.order, entry.EntryID)
	}
	for id, status := range t.stagedStatus {
		entry := t.repo.entries[id]
		entry.Status = status
		t.repo.entries[id] = entry
	}
	if t.stagedAccount != nil {
		t.repo.accounts[t.stagedAccount.AccountID] = *t.stagedAccount
	}
	t.closed = true
	t.repo.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	t.repo.mu.Unlock()
	return nil
}
