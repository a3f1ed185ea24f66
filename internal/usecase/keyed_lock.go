package usecase

import "sync"

// keyedMutex serializes work per key. Login-counter and passcode mutations
// for the same account must not interleave, so every auth flow takes the
// account's lock before its read-check-write sequence.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLockEntry
}

type keyedLockEntry struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLockEntry)}
}

// Lock acquires the lock for key and returns the matching unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedLockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.Mutex.Lock()

	return func() {
		entry.Mutex.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
