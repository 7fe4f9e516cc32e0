package syncx

import "sync"

// LockFunc runs fn while holding mux.
func LockFunc(mux sync.Locker, fn func()) {
	mux.Lock()
	defer mux.Unlock()
	fn()
}

// LockFuncT runs fn while holding mux, and returns its result.
func LockFuncT[T any](mux sync.Locker, fn func() T) T {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

type RLocker interface {
	RLock()
	RUnlock()
}

func RLockFuncT[T any](mux RLocker, fn func() T) T {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}
