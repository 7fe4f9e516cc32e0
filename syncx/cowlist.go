package syncx

import (
	"slices"
	"sync/atomic"
)

// COWList is a copy-on-write list that may be mutated concurrently without locks.
// Every mutation builds a new backing slice and publishes it with a compare-and-swap, retrying if another goroutine published first.
// Readers always see a complete snapshot, and no concurrent Add or Remove is ever lost.
//
// The zero value is an empty list ready to use. A COWList must not be copied after first use.
type COWList[T comparable] struct {
	items atomic.Pointer[[]T]
}

// Snapshot returns the current contents of the list.
// The returned slice must not be modified.
func (l *COWList[T]) Snapshot() []T {
	cur := l.items.Load()
	if cur == nil {
		return nil
	}
	return *cur
}

// Len returns the number of entries in the current snapshot.
func (l *COWList[T]) Len() int {
	return len(l.Snapshot())
}

// Add appends val to the list. Duplicates are allowed, so adding the same value twice requires removing it twice.
func (l *COWList[T]) Add(val T) {
	l.Update(func(cur []T) ([]T, bool) {
		return append(slices.Clip(cur), val), true
	})
}

// Remove deletes the last occurrence of val, returning false if val wasn't present.
func (l *COWList[T]) Remove(val T) bool {
	return l.Update(func(cur []T) ([]T, bool) {
		i := lastIndex(cur, val)
		if i < 0 {
			return cur, false
		}
		next := make([]T, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		return append(next, cur[i+1:]...), true
	})
}

// Update runs the read-compute-swap loop with the given compute function.
// The compute function receives the current snapshot, which it must not modify, and returns the replacement along with whether anything changed.
// If nothing changed, then the list is left as is and false is returned.
// The compute function may be called more than once if other goroutines mutate the list concurrently.
func (l *COWList[T]) Update(compute func(cur []T) ([]T, bool)) bool {
	for {
		cur := l.items.Load()
		var vals []T
		if cur != nil {
			vals = *cur
		}
		next, changed := compute(vals)
		if !changed {
			return false
		}
		if l.items.CompareAndSwap(cur, &next) {
			return true
		}
	}
}

func lastIndex[T comparable](vals []T, val T) int {
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] == val {
			return i
		}
	}
	return -1
}
