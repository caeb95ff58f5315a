package concurrency

import (
	"sync"
)

// LockManager hands out named locks. The wallet service uses one lock per
// account ID so the balance check and mutation of a debit form a critical
// section, while different accounts proceed fully in parallel.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
// Locks are never evicted; one mutex per active account is cheap.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
