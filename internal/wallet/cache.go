package wallet

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hirelink/points/internal/domain"
)

// accountCache is a read-through LRU over wallet accounts. It is never the
// source of truth: every committed mutation invalidates the entry, and the
// TTL bounds staleness if an invalidation is ever missed.
type accountCache struct {
	lru *expirable.LRU[string, *domain.WalletAccount]
}

func newAccountCache(size int, ttl time.Duration) *accountCache {
	return &accountCache{
		lru: expirable.NewLRU[string, *domain.WalletAccount](size, nil, ttl),
	}
}

func (c *accountCache) Get(accountID string) (*domain.WalletAccount, bool) {
	account, found := c.lru.Get(accountID)
	if !found {
		return nil, false
	}
	// Hand out a copy so callers can't mutate the cached value.
	copied := *account
	return &copied, true
}

func (c *accountCache) Set(accountID string, account *domain.WalletAccount) {
	copied := *account
	c.lru.Add(accountID, &copied)
}

func (c *accountCache) Invalidate(accountID string) {
	c.lru.Remove(accountID)
}
