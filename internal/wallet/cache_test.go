package wallet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelink/points/internal/domain"
)

func TestAccountCache_RoundTrip(t *testing.T) {
	cache := newAccountCache(8, time.Minute)
	account := &domain.WalletAccount{AccountID: "user-1", CurrentPoints: 40}

	cache.Set("user-1", account)

	got, found := cache.Get("user-1")
	require.True(t, found)
	assert.Equal(t, 40, got.CurrentPoints)
}

func TestAccountCache_Miss(t *testing.T) {
	cache := newAccountCache(8, time.Minute)

	_, found := cache.Get("ghost")

	assert.False(t, found)
}

func TestAccountCache_Invalidate(t *testing.T) {
	cache := newAccountCache(8, time.Minute)
	cache.Set("user-1", &domain.WalletAccount{AccountID: "user-1"})

	cache.Invalidate("user-1")

	_, found := cache.Get("user-1")
	assert.False(t, found)
}

func TestAccountCache_ReturnsCopies(t *testing.T) {
	// Mutating what Get hands back must not poison the cached value
	cache := newAccountCache(8, time.Minute)
	cache.Set("user-1", &domain.WalletAccount{AccountID: "user-1", CurrentPoints: 40})

	got, found := cache.Get("user-1")
	require.True(t, found)
	got.CurrentPoints = 9999

	fresh, found := cache.Get("user-1")
	require.True(t, found)
	assert.Equal(t, 40, fresh.CurrentPoints)
}

func TestAccountCache_SetCopiesInput(t *testing.T) {
	cache := newAccountCache(8, time.Minute)
	account := &domain.WalletAccount{AccountID: "user-1", CurrentPoints: 40}
	cache.Set("user-1", account)

	account.CurrentPoints = 0

	got, found := cache.Get("user-1")
	require.True(t, found)
	assert.Equal(t, 40, got.CurrentPoints)
}
