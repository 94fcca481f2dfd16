package indexer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexLock_ConcurrentAcquisition(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "TryAcquire succeeds when lock is available",
			testFunc: func(t *testing.T) {
				var lock IndexLock
				assert.False(t, lock.Busy())
				acquired := lock.TryAcquire()
				assert.True(t, acquired, "TryAcquire should succeed when lock is available")
				assert.True(t, lock.Busy())
				lock.Release()
				assert.False(t, lock.Busy())
			},
		},
		{
			name: "Since reports the start of the current run",
			testFunc: func(t *testing.T) {
				var lock IndexLock
				_, ok := lock.Since()
				assert.False(t, ok, "idle lock has no start time")

				before := time.Now()
				require.True(t, lock.TryAcquire())
				since, ok := lock.Since()
				require.True(t, ok)
				assert.WithinDuration(t, before, since, time.Minute)

				lock.Release()
				_, ok = lock.Since()
				assert.False(t, ok)
			},
		},
		{
			name: "TryAcquire fails when lock is held",
			testFunc: func(t *testing.T) {
				var lock IndexLock

				acquired1 := lock.TryAcquire()
				require.True(t, acquired1, "First TryAcquire should succeed")

				acquired2 := lock.TryAcquire()
				assert.False(t, acquired2, "Second TryAcquire should fail while lock is held")

				lock.Release()
			},
		},
		{
			name: "Release makes lock available again",
			testFunc: func(t *testing.T) {
				var lock IndexLock

				require.True(t, lock.TryAcquire())
				lock.Release()

				assert.True(t, lock.TryAcquire(), "Lock should be available after Release")
				lock.Release()
			},
		},
		{
			name: "Concurrent goroutines attempting acquisition",
			testFunc: func(t *testing.T) {
				var lock IndexLock
				const numGoroutines = 100

				acquired := make([]bool, numGoroutines)
				var wg sync.WaitGroup
				wg.Add(numGoroutines)

				for i := 0; i < numGoroutines; i++ {
					go func(idx int) {
						defer wg.Done()
						acquired[idx] = lock.TryAcquire()
					}(i)
				}

				wg.Wait()

				successCount := 0
				for _, success := range acquired {
					if success {
						successCount++
					}
				}

				assert.Equal(t, 1, successCount, "Exactly one goroutine should acquire the lock")
				lock.Release()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
