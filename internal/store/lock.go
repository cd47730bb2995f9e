package store

import (
	"sync"
)

// KeyedMutex serializes critical sections per key. The cart and order
// services share one instance keyed by user id so that merge-on-add and
// the whole place-order sequence cannot interleave for the same user.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[uint]*sync.Mutex),
	}
}

func (k *KeyedMutex) Lock(key uint) {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
}

func (k *KeyedMutex) Unlock(key uint) {
	k.mu.Lock()
	lock := k.locks[key]
	k.mu.Unlock()

	if lock != nil {
		lock.Unlock()
	}
}
