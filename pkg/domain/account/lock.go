package account

import (
	"cmp"
	"slices"
	"sync/atomic"
)

// lockRanks orders accounts that share a number, e.g. when two banks draw
// from separate sequences.
var lockRanks atomic.Uint64

func compareLockOrder(a, b *Account) int {
	if c := cmp.Compare(a.number, b.number); c != 0 {
		return c
	}
	return cmp.Compare(a.rank, b.rank)
}

// lockAll locks every distinct account in accs, lowest number first, and
// returns the matching unlock.
func lockAll(accs []*Account) (unlock func()) {
	held := slices.DeleteFunc(slices.Clone(accs), func(a *Account) bool { return a == nil })
	slices.SortFunc(held, compareLockOrder)
	held = slices.Compact(held)
	for _, a := range held {
		a.mu.Lock()
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
		}
	}
}

// WhileEmpty locks all of accs and, if every balance is exactly zero, runs fn
// before releasing them. It reports whether fn ran. Operations on those
// accounts wait until WhileEmpty returns, so fn must not call back into them.
func WhileEmpty(accs []*Account, fn func()) bool {
	unlock := lockAll(accs)
	defer unlock()
	for _, a := range accs {
		if a != nil && !a.balance.IsZero() {
			return false
		}
	}
	fn()
	return true
}
