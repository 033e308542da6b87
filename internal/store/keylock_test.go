package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLocks_SerializesSameKey(t *testing.T) {
	locks := NewKeyLocks()

	counter := 0
	const workers = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := locks.Lock("cart:abc")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyLocks_IndependentKeysDoNotBlock(t *testing.T) {
	locks := NewKeyLocks()

	unlockA := locks.Lock("a")
	defer unlockA()

	// Holding "a" must not block "b".
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("b")
		unlockB()
		close(done)
	}()

	<-done
}

func TestKeyLocks_EntryRemovedAfterLastRelease(t *testing.T) {
	locks := NewKeyLocks()

	unlock := locks.Lock("k")
	locks.mu.Lock()
	assert.Len(t, locks.entries, 1)
	locks.mu.Unlock()

	unlock()

	locks.mu.Lock()
	assert.Empty(t, locks.entries)
	locks.mu.Unlock()
}

func TestKeyLocks_Reentry(t *testing.T) {
	locks := NewKeyLocks()

	// Sequential lock/unlock cycles on the same key must not deadlock and
	// must leave a clean table.
	for i := 0; i < 10; i++ {
		unlock := locks.Lock("k")
		unlock()
	}

	locks.mu.Lock()
	assert.Empty(t, locks.entries)
	locks.mu.Unlock()
}
