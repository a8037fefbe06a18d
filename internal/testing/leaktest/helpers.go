// Package leaktest checks that long-running components release their goroutines.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettle bounds how long Check waits for goroutines to exit
const DefaultSettle = 500 * time.Millisecond

// GoroutineChecker records a goroutine baseline and later verifies it is restored
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check polls until at most tolerance goroutines remain above the baseline,
// failing the test after DefaultSettle.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if n, ok := settle(g.before+tolerance, DefaultSettle); !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", g.before, n, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until the goroutine count drops to target
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()
	if n, ok := settle(target, timeout); !ok {
		t.Errorf("timed out waiting for goroutines: current=%d target=%d", n, target)
	}
}

func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(10 * time.Millisecond)
	}
}
