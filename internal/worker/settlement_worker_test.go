package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/wallet"
)

func TestSettlementWorker_FailsStalePurchases(t *testing.T) {
	// ARRANGE - a pending purchase backdated past the max age
	repo := wallet.NewFakeRepository()
	svc := wallet.NewService(repo, wallet.DefaultCatalog())
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "user-1", domain.RoleCandidate, "fresher")
	require.NoError(t, err)
	receipt, err := svc.Purchase(ctx, "user-1", "starter_pack", "")
	require.NoError(t, err)

	backdateEntry(t, repo, receipt.Entry.EntryID, time.Now().UTC().Add(-2*time.Hour))

	w := NewSettlementWorker(svc, time.Hour)

	// ACT
	require.NoError(t, w.Process(ctx))

	// ASSERT - the entry failed, the balance never moved
	settled, err := svc.GetAccount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, settled.CurrentPoints)

	after, err := repo.GetEntry(ctx, receipt.Entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, after.Status)
}

func TestSettlementWorker_LeavesFreshPurchases(t *testing.T) {
	// ARRANGE - a pending purchase created just now
	repo := wallet.NewFakeRepository()
	svc := wallet.NewService(repo, wallet.DefaultCatalog())
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "user-1", domain.RoleCandidate, "fresher")
	require.NoError(t, err)
	receipt, err := svc.Purchase(ctx, "user-1", "starter_pack", "")
	require.NoError(t, err)

	w := NewSettlementWorker(svc, time.Hour)

	// ACT
	require.NoError(t, w.Process(ctx))

	// ASSERT - still pending
	after, err := repo.GetEntry(ctx, receipt.Entry.EntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, after.Status)
}

// backdateEntry rewrites an entry's creation time through the repository's
// transaction API so the sweeper sees it as stale.
func backdateEntry(t *testing.T, repo *wallet.FakeRepository, entryID string, createdAt time.Time) {
	t.Helper()
	ctx := context.Background()

	entry, err := repo.GetEntry(ctx, entryID)
	require.NoError(t, err)
	entry.CreatedAt = createdAt

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertEntry(ctx, entry))
	require.NoError(t, tx.Commit(ctx))
}
