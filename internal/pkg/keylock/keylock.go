// Package keylock provides mutual exclusion keyed by string. It is used to
// serialize progress batches per order number: batches for the same order run
// one at a time, batches for different orders run concurrently.
package keylock

import "sync"

// KeyedMutex hands out one mutex per key. Mutexes are created on first use
// and retained for the lifetime of the KeyedMutex; the working set of keys
// (active order numbers) is assumed to stay small.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	k.mutexFor(key).Lock()
}

// Unlock releases the mutex for key. It must only be called after a
// corresponding Lock on the same key.
func (k *KeyedMutex) Unlock(key string) {
	k.mutexFor(key).Unlock()
}

func (k *KeyedMutex) mutexFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
