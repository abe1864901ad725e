package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	release, err := l.Obtain(ctx, "reconcile", time.Minute)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "reconcile", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)

	other, err := l.Obtain(ctx, "other", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	again, err := l.Obtain(ctx, "reconcile", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestLocalLocker_Expiry(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	stale, err := l.Obtain(ctx, "job", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	fresh, err := l.Obtain(ctx, "job", time.Minute)
	require.NoError(t, err)

	// Releasing the expired hold must not free the new owner's lock.
	require.NoError(t, stale(ctx))
	_, err = l.Obtain(ctx, "job", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)

	require.NoError(t, fresh(ctx))
}

func TestLocalLocker_Exclusive(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	var winners int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Obtain(ctx, "hot", time.Minute); err == nil {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, winners)
}

func TestNew(t *testing.T) {
	t.Run("Local When No Address", func(t *testing.T) {
		locker, closeFn, err := New(Config{})
		require.NoError(t, err)
		assert.IsType(t, &LocalLocker{}, locker)
		assert.NoError(t, closeFn())
	})

	t.Run("Unreachable Redis", func(t *testing.T) {
		_, _, err := New(Config{Addr: "127.0.0.1:1"})
		assert.ErrorContains(t, err, "failed to connect to redis")
	})
}
