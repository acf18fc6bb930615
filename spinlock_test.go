package hoard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpinLockMutualExclusion(t *testing.T) {
	var l spinLock
	var counter int
	var wg sync.WaitGroup

	const goroutines = 32
	const iterations = 1000
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, goroutines*iterations, counter)
}

func TestSpinLockZeroValueUnlocked(t *testing.T) {
	var l spinLock
	l.Lock()
	l.Unlock()
}
