package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hirelink/points/internal/concurrency"
	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/logger"
	"github.com/hirelink/points/internal/metrics"
	"github.com/hirelink/points/internal/pricing"
	"github.com/hirelink/points/internal/repository"
)

// Service is the wallet ledger: the only component permitted to change an
// account's points. Every balance change is the side effect of committing a
// ledger entry, so the balance is always derivable from the entry history.
type Service interface {
	CreateAccount(ctx context.Context, accountID string, role domain.Role, tier string) (*domain.WalletAccount, error)
	GetAccount(ctx context.Context, accountID string) (*domain.WalletAccount, error)
	GetEntries(ctx context.Context, filter repository.EntryFilter) ([]domain.LedgerEntry, error)
	GetStats(ctx context.Context, accountID string) (*domain.WalletStats, error)

	Credit(ctx context.Context, accountID string, amount int, category, description string) (*domain.LedgerEntry, error)
	Debit(ctx context.Context, accountID string, amount int, category, description string) (*domain.LedgerEntry, error)

	// Refund is the compensating credit for a committed debit; there is no
	// way to cancel a committed debit in place.
	Refund(ctx context.Context, accountID string, amount int, description string) (*domain.LedgerEntry, error)

	// Purchase creates a pending purchased entry for a catalog package; the
	// balance does not move until SettlePurchase completes it.
	Purchase(ctx context.Context, accountID, packageID, promoCode string) (*PurchaseReceipt, error)
	SettlePurchase(ctx context.Context, entryID string, succeeded bool) (*domain.LedgerEntry, error)

	// ExpireStalePurchases fails pending purchases older than maxAge and
	// returns the number of entries it settled. Run periodically by the
	// settlement sweeper.
	ExpireStalePurchases(ctx context.Context, maxAge time.Duration) (int, error)
}

type service struct {
	repo     repository.Wallet
	locks    *concurrency.LockManager
	cache    *accountCache
	packages *Catalog
	now      func() time.Time
}

// NewService creates a new wallet service.
func NewService(repo repository.Wallet, packages *Catalog) Service {
	return &service{
		repo:     repo,
		locks:    concurrency.NewLockManager(),
		cache:    newAccountCache(defaultCacheSize, defaultCacheTTL),
		packages: packages,
		now:      time.Now,
	}
}

func (s *service) CreateAccount(ctx context.Context, accountID string, role domain.Role, tier string) (*domain.WalletAccount, error) {
	log := logger.FromContext(ctx)

	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	initial := pricing.InitialAllocation(role, tier)
	now := s.now()
	account := &domain.WalletAccount{
		AccountID: accountID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		log.Error("Failed to create wallet account", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	metrics.AccountsCreated.WithLabelValues(string(role)).Inc()

	// The signup allocation goes through the ledger like any other credit
	// so the balance invariant holds from the first entry.
	if initial > 0 {
		if _, err := s.Credit(ctx, accountID, initial, domain.CategoryBonus, SignupBonusDescription); err != nil {
			return nil, fmt.Errorf("failed to grant signup allocation: %w", err)
		}
	}

	log.Info("Wallet account created", "account_id", accountID, "role", role, "initial_points", initial)
	return s.GetAccount(ctx, accountID)
}

func (s *service) GetAccount(ctx context.Context, accountID string) (*domain.WalletAccount, error) {
	if account, ok := s.cache.Get(accountID); ok {
		return account, nil
	}

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(accountID, account)
	return account, nil
}

func (s *service) GetEntries(ctx context.Context, filter repository.EntryFilter) ([]domain.LedgerEntry, error) {
	if filter.AccountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetEntries(ctx, filter)
}

func (s *service) Credit(ctx context.Context, accountID string, amount int, category, description string) (*domain.LedgerEntry, error) {
	return s.credit(ctx, accountID, amount, domain.EntryEarned, category, description, domain.StatusCompleted)
}

// Refund credits points back as a refunded entry. Refunds increase
// TotalEarned rather than reducing TotalSpent; either convention satisfies
// the balance invariant, this one keeps both counters monotonic.
func (s *service) Refund(ctx context.Context, accountID string, amount int, description string) (*domain.LedgerEntry, error) {
	return s.credit(ctx, accountID, amount, domain.EntryRefunded, domain.CategoryRefund, description, domain.StatusCompleted)
}

// credit appends a credit-kind entry. Completed entries move the balance
// immediately; pending ones wait for settlement.
func (s *service) credit(ctx context.Context, accountID string, amount int, kind domain.EntryKind, category, description string, status domain.EntryStatus) (*domain.LedgerEntry, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}

	lock := s.locks.GetLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	entry := s.newEntry(accountID, kind, amount, category, description, status)

	apply := func(tx repository.WalletTx) error {
		account, err := tx.GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry); err != nil {
			return err
		}
		if status == domain.StatusCompleted {
			account.TotalEarned += amount
			account.CurrentPoints = account.TotalEarned - account.TotalSpent
			account.UpdatedAt = entry.CreatedAt
			if err := tx.UpdateBalance(ctx, account); err != nil {
				return err
			}
		}
		return nil
	}

	if err := s.commit(ctx, accountID, apply); err != nil {
		log.Error("Credit failed", "account_id", accountID, "amount", amount, "error", err)
		return nil, err
	}

	if status == domain.StatusCompleted {
		metrics.PointsEarned.Add(float64(amount))
	}
	log.Info("Credit committed", "account_id", accountID, "amount", amount, "kind", kind, "category", category, "status", status)
	return entry, nil
}

func (s *service) Debit(ctx context.Context, accountID string, amount int, category, description string) (*domain.LedgerEntry, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}

	// Per-account critical section: the affordability check and the balance
	// mutation must not interleave with another debit or credit for the
	// same account.
	lock := s.locks.GetLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	entry := s.newEntry(accountID, domain.EntrySpent, amount, category, description, domain.StatusCompleted)

	apply := func(tx repository.WalletTx) error {
		account, err := tx.GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account.CurrentPoints < amount {
			// Denied debits leave no ledger entry - the ledger records
			// effected changes, not refused requests.
			return domain.NewInsufficientPointsError(amount, account.CurrentPoints)
		}
		if err := tx.InsertEntry(ctx, entry); err != nil {
			return err
		}
		account.TotalSpent += amount
		account.CurrentPoints = account.TotalEarned - account.TotalSpent
		account.UpdatedAt = entry.CreatedAt
		return tx.UpdateBalance(ctx, account)
	}

	if err := s.commit(ctx, accountID, apply); err != nil {
		var insufficient *domain.InsufficientPointsError
		if errors.As(err, &insufficient) {
			metrics.DebitsDenied.Inc()
			log.Info("Debit denied",
				"account_id", accountID,
				"required", insufficient.Required,
				"current", insufficient.Current,
				"shortage", insufficient.Shortage)
			return nil, err
		}
		log.Error("Debit failed", "account_id", accountID, "amount", amount, "error", err)
		return nil, err
	}

	metrics.PointsSpent.Add(float64(amount))
	log.Info("Debit committed", "account_id", accountID, "amount", amount, "category", category)
	return entry, nil
}

// PurchaseReceipt pairs the pending ledger entry with the USD charge the
// payment provider should collect, so an applied promo is visible to the
// caller before payment starts.
type PurchaseReceipt struct {
	Entry           domain.LedgerEntry
	PriceUSD        float64
	DiscountApplied float64
}

func (s *service) Purchase(ctx context.Context, accountID, packageID, promoCode string) (*PurchaseReceipt, error) {
	log := logger.FromContext(ctx)

	pkg, err := s.packages.Get(packageID)
	if err != nil {
		return nil, err
	}

	// Promo validation happens before the pending entry exists so an
	// invalid code never appears half-applied.
	promo, err := pricing.PromoDiscount(promoCode)
	if err != nil {
		return nil, err
	}

	// Package and promo discounts do not stack; the larger one wins,
	// same rule as action pricing.
	discount := pkg.Discount
	if promo > discount {
		discount = promo
	}
	price := math.Round(pkg.PriceUSD*(1-discount)*100) / 100

	points := pkg.Points + pkg.BonusPoints
	description := fmt.Sprintf("Purchased %s", pkg.Name)
	entry, err := s.credit(ctx, accountID, points, domain.EntryPurchased, domain.CategoryPurchase, description, domain.StatusPending)
	if err != nil {
		return nil, err
	}

	log.Info("Purchase pending",
		"account_id", accountID,
		"package_id", packageID,
		"points", points,
		"price_usd", price,
		"discount", discount)
	return &PurchaseReceipt{Entry: *entry, PriceUSD: price, DiscountApplied: discount}, nil
}

func (s *service) SettlePurchase(ctx context.Context, entryID string, succeeded bool) (*domain.LedgerEntry, error) {
	log := logger.FromContext(ctx)

	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: entry %s is %s", domain.ErrEntrySettled, entryID, entry.Status)
	}

	lock := s.locks.GetLock(entry.AccountID)
	lock.Lock()
	defer lock.Unlock()

	status := domain.StatusCompleted
	if !succeeded {
		status = domain.StatusFailed
	}

	apply := func(tx repository.WalletTx) error {
		account, err := tx.GetAccountForUpdate(ctx, entry.AccountID)
		if err != nil {
			return err
		}
		if err := tx.SetEntryStatus(ctx, entryID, status); err != nil {
			return err
		}
		// The balance moves only on the transition into completed.
		if status == domain.StatusCompleted {
			account.TotalEarned += entry.Amount
			account.CurrentPoints = account.TotalEarned - account.TotalSpent
			account.UpdatedAt = s.now().UTC()
			return tx.UpdateBalance(ctx, account)
		}
		return nil
	}

	if err := s.commit(ctx, entry.AccountID, apply); err != nil {
		log.Error("Failed to settle purchase", "entry_id", entryID, "error", err)
		return nil, err
	}

	metrics.PurchasesSettled.WithLabelValues(string(status)).Inc()
	if status == domain.StatusCompleted {
		metrics.PointsEarned.Add(float64(entry.Amount))
	}

	entry.Status = status
	log.Info("Purchase settled", "entry_id", entryID, "status", status)
	return entry, nil
}

func (s *service) ExpireStalePurchases(ctx context.Context, maxAge time.Duration) (int, error) {
	log := logger.FromContext(ctx)

	cutoff := s.now().UTC().Add(-maxAge)
	stale, err := s.repo.GetStalePendingEntries(ctx, cutoff, expireBatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, entry := range stale {
		if _, err := s.SettlePurchase(ctx, entry.EntryID, false); err != nil {
			// A concurrent settlement won the race; skip, don't abort the sweep.
			if errors.Is(err, domain.ErrEntrySettled) {
				continue
			}
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		log.Info("Expired stale pending purchases", "count", expired, "cutoff", cutoff)
	}
	return expired, nil
}

func (s *service) GetStats(ctx context.Context, accountID string) (*domain.WalletStats, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.GetEntries(ctx, repository.EntryFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	stats := &domain.WalletStats{
		AccountID:   accountID,
		TotalEarned: account.TotalEarned,
		TotalSpent:  account.TotalSpent,
	}
	byCategory := map[string]int{}
	for _, e := range entries {
		if e.Status != domain.StatusCompleted {
			continue
		}
		stats.TransactionCount++
		switch {
		case e.Kind == domain.EntryPurchased:
			stats.TotalPurchased += e.Amount
		case e.Kind == domain.EntrySpent:
			byCategory[e.Category] += e.Amount
		}
	}
	for _, category := range spendingCategories {
		if amount, ok := byCategory[category]; ok {
			stats.SpendingBreakdown = append(stats.SpendingBreakdown, domain.CategoryTotal{
				Category: category,
				Amount:   amount,
			})
		}
	}
	return stats, nil
}

// commit runs apply inside a repository transaction, retrying exactly once
// on a reported balance conflict with a fresh read. The cache entry for the
// account is dropped whether the transaction succeeded or not; the next read
// re-populates it from storage.
func (s *service) commit(ctx context.Context, accountID string, apply func(repository.WalletTx) error) error {
	defer s.cache.Invalidate(accountID)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := apply(tx); err != nil {
			repository.SafeRollback(ctx, tx)
			if errors.Is(err, domain.ErrConcurrencyConflict) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			repository.SafeRollback(ctx, tx)
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}
	return lastErr
}

func (s *service) newEntry(accountID string, kind domain.EntryKind, amount int, category, description string, status domain.EntryStatus) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   accountID,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		Status:      status,
		CreatedAt:   s.now().UTC(),
	}
}
