package store

import "sync"

// KeyLocks provides in-process mutual exclusion per record key. Mutate and
// Delete route every operation on a given (type, id) pair through the same
// lock so read-modify-write cycles on one record never interleave, while
// operations on different keys proceed fully concurrently.
type KeyLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyLocks creates an empty lock table.
func NewKeyLocks() *KeyLocks {
	return &KeyLocks{
		entries: make(map[string]*lockEntry),
	}
}

// Lock acquires the lock for the given key and returns the matching unlock
// function. Entries are reference-counted and removed once the last holder
// releases, so the table does not grow with the keyspace.
func (l *KeyLocks) Lock(key string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
