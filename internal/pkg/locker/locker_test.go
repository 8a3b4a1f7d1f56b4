package locker_test

import (
	"sync"
	"testing"
	"time"

	"fulfillment/internal/pkg/locker"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SameKeySerializes(t *testing.T) {
	km := locker.NewKeyedMutex()

	var counter int
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("order-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := locker.NewKeyedMutex()

	unlockA := km.Lock("order-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("order-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestKeyedMutex_UnlockReleasesWaiter(t *testing.T) {
	km := locker.NewKeyedMutex()

	unlock := km.Lock("order-1")

	acquired := make(chan struct{})
	go func() {
		u := km.Lock("order-1")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter was not released after unlock")
	}
}
