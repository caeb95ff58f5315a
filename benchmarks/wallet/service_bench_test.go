package wallet_bench

import (
	"context"
	"testing"
	"time"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/pricing"
	"github.com/hirelink/points/internal/repository"
	"github.com/hirelink/points/internal/wallet"
)

// --- Stubs (Zero-overhead mocks for benchmarking) ---

type StubRepository struct{}

func (s *StubRepository) CreateAccount(ctx context.Context, account *domain.WalletAccount) error {
	return nil
}

func (s *StubRepository) GetAccount(ctx context.Context, accountID string) (*domain.WalletAccount, error) {
	return stubAccount(accountID), nil
}

func (s *StubRepository) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return &domain.LedgerEntry{
		EntryID:   entryID,
		AccountID: "bench-account",
		Kind:      domain.EntryPurchased,
		Amount:    50,
		Category:  domain.CategoryPurchase,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *StubRepository) GetEntries(ctx context.Context, filter repository.EntryFilter) ([]domain.LedgerEntry, error) {
	return nil, nil
}

func (s *StubRepository) GetStalePendingEntries(ctx context.Context, cutoff time.Time, limit int) ([]domain.LedgerEntry, error) {
	return nil, nil
}

func (s *StubRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	return &StubTx{}, nil
}

type StubTx struct{}

func (s *StubTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.WalletAccount, error) {
	// Return a fresh object to simulate a db fetch and allow state mutations safely
	return stubAccount(accountID), nil
}

func (s *StubTx) InsertEntry(ctx context.Context, entry *domain.LedgerEntry) error { return nil }
func (s *StubTx) UpdateBalance(ctx context.Context, account *domain.WalletAccount) error {
	return nil
}
func (s *StubTx) SetEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus) error {
	return nil
}
func (s *StubTx) Commit(ctx context.Context) error   { return nil }
func (s *StubTx) Rollback(ctx context.Context) error { return nil }

func stubAccount(accountID string) *domain.WalletAccount {
	return &domain.WalletAccount{
		AccountID:     accountID,
		Role:          domain.RoleRecruiter,
		CurrentPoints: 1000,
		TotalEarned:   2000,
		TotalSpent:    1000,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}

// --- Benchmarks ---

func BenchmarkDebit(b *testing.B) {
	svc := wallet.NewService(&StubRepository{}, wallet.DefaultCatalog())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Debit(ctx, "bench-account", 10, domain.CategoryResumeAccess, "bench"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCredit(b *testing.B) {
	svc := wallet.NewService(&StubRepository{}, wallet.DefaultCatalog())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Credit(ctx, "bench-account", 10, domain.CategoryBonus, "bench"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPrice(b *testing.B) {
	engine := pricing.NewEngine(pricing.DefaultTable())
	subject := domain.SubjectProfile{
		ID:                 "bench-subject",
		ExperienceTier:     domain.TierSenior,
		Skills:             []string{"python", "react", "machine learning"},
		HasPortfolio:       true,
		CertificationCount: 3,
		QualityScore:       9,
	}
	action := domain.ActionRequest{
		Type:     domain.ActionResumeAccess,
		Quantity: 1,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Price(subject, action); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPriceParallel(b *testing.B) {
	engine := pricing.NewEngine(pricing.DefaultTable())
	subject := domain.SubjectProfile{
		ID:             "bench-subject",
		ExperienceTier: domain.TierMid,
		Skills:         []string{"java"},
	}
	action := domain.ActionRequest{
		Type:     domain.ActionResumeAccess,
		Quantity: 5,
	}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := engine.Price(subject, action); err != nil {
				b.Fatal(err)
			}
		}
	})
}
