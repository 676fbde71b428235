package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bloom/pkg/workerpool"
)

func TestSubmitRunsTasks(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		}))
	}

	wg.Wait()
	assert.Equal(t, int64(8), atomic.LoadInt64(&count))
}

func TestSubmitRejectsWhenFull(t *testing.T) {
	pool := workerpool.New(1)

	block := make(chan struct{})
	started := make(chan struct{})

	// Occupy the single worker and fill both queue slots, then the next
	// submit has nowhere to go.
	require.NoError(t, pool.Submit(func() { close(started); <-block }))
	<-started
	require.NoError(t, pool.Submit(func() { <-block }))
	require.NoError(t, pool.Submit(func() { <-block }))

	err := pool.Submit(func() {})
	assert.ErrorIs(t, err, workerpool.ErrPoolFull)

	close(block)
	pool.Shutdown()
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	err := pool.Submit(func() {})
	assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
}

func TestShutdownWaitsForInFlight(t *testing.T) {
	pool := workerpool.New(2)

	var done int64
	require.NoError(t, pool.Submit(func() {
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt64(&done, 1)
	}))

	pool.Shutdown()
	assert.Equal(t, int64(1), atomic.LoadInt64(&done))
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	require.NoError(t, pool.Submit(func() { panic("boom") }))

	// The same worker must still pick up the next task.
	ran := make(chan struct{})
	require.Eventually(t, func() bool {
		return pool.Submit(func() { close(ran) }) == nil
	}, time.Second, 10*time.Millisecond)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker did not recover after panic")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()
	pool.Shutdown()
}
