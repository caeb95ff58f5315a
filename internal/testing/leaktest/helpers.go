// Package leaktest provides goroutine leak detection for tests that spawn
// concurrent wallet operations.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// Checker records the goroutine count at construction and compares it
// against the count at Check time.
type Checker struct {
	before int
	t      testing.TB
}

// NewChecker snapshots the current goroutine count.
func NewChecker(t testing.TB) *Checker {
	t.Helper()

	// Let background goroutines settle before counting
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &Checker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if the goroutine count grew past the tolerance.
func (c *Checker) Check(tolerance int) {
	c.t.Helper()

	// Give finished goroutines time to exit
	runtime.Gosched()
	time.Sleep(50 * time.Millisecond)
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	leaked := after - c.before

	if leaked > tolerance {
		c.t.Errorf("goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			c.before, after, leaked, tolerance)
	}
}

// CheckNone runs fn and fails the test if any goroutine it started is
// still running afterwards.
func CheckNone(t *testing.T, fn func()) {
	t.Helper()

	checker := NewChecker(t)
	fn()
	checker.Check(0)
}
