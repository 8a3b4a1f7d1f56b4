// Package locker provides per-key mutual exclusion.
//
// Command handlers use it to serialize mutating operations on the same order:
// two goroutines locking the same key take turns, goroutines locking different
// keys proceed independently. Locks are reference counted and removed from the
// table once the last holder releases them, so the table does not grow with
// the number of keys ever seen.
package locker

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex is a set of named mutexes. The zero value is not usable; create
// one with NewKeyedMutex.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking while another goroutine holds it.
// It returns the unlock function; callers typically defer it immediately.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
