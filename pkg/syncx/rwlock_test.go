package syncx

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReentrantRWLock_ReadReentry(t *testing.T) {
	l := NewReentrantRWLock()

	var inner bool
	err := l.WithReadLock(context.Background(), func(ctx context.Context) error {
		require.True(t, l.HoldsRead(ctx))
		return l.WithReadLock(ctx, func(ctx context.Context) error {
			inner = true
			return nil
		})
	})
	require.NoError(t, err)
	assert.True(t, inner)
}

func TestReentrantRWLock_ReadInsideWrite(t *testing.T) {
	l := NewReentrantRWLock()

	var inner bool
	err := l.WithWriteLock(context.Background(), func(ctx context.Context) error {
		require.True(t, l.HoldsWrite(ctx))
		require.True(t, l.HoldsRead(ctx), "write implies read")
		return l.WithReadLock(ctx, func(ctx context.Context) error {
			inner = true
			return nil
		})
	})
	require.NoError(t, err)
	assert.True(t, inner, "nested read under write must not deadlock")
}

func TestReentrantRWLock_WriteReentry(t *testing.T) {
	l := NewReentrantRWLock()

	var inner bool
	err := l.WithWriteLock(context.Background(), func(ctx context.Context) error {
		return l.WithWriteLock(ctx, func(ctx context.Context) error {
			inner = true
			return nil
		})
	})
	require.NoError(t, err)
	assert.True(t, inner)
}

func TestReentrantRWLock_UpgradeRefused(t *testing.T) {
	l := NewReentrantRWLock()

	done := make(chan error, 1)
	go func() {
		done <- l.WithReadLock(context.Background(), func(ctx context.Context) error {
			return l.WithWriteLock(ctx, func(context.Context) error {
				t.Error("upgrade body must never run")
				return nil
			})
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrUpgradeDeadlock)
	case <-time.After(2 * time.Second):
		t.Fatal("upgrade attempt blocked instead of failing fast")
	}
}

func TestReentrantRWLock_WriteExcludesReaders(t *testing.T) {
	l := NewReentrantRWLock()

	const readers = 8
	var (
		activeReaders int32
		writerActive  int32
		violations    int32
		wg            sync.WaitGroup
	)

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				err := l.WithReadLock(context.Background(), func(context.Context) error {
					atomic.AddInt32(&activeReaders, 1)
					if atomic.LoadInt32(&writerActive) != 0 {
						atomic.AddInt32(&violations, 1)
					}
					time.Sleep(time.Microsecond)
					atomic.AddInt32(&activeReaders, -1)
					return nil
				})
				if err != nil {
					atomic.AddInt32(&violations, 1)
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 25; j++ {
			err := l.WithWriteLock(context.Background(), func(context.Context) error {
				atomic.StoreInt32(&writerActive, 1)
				if atomic.LoadInt32(&activeReaders) != 0 {
					atomic.AddInt32(&violations, 1)
				}
				time.Sleep(time.Microsecond)
				atomic.StoreInt32(&writerActive, 0)
				return nil
			})
			if err != nil {
				atomic.AddInt32(&violations, 1)
			}
		}
	}()

	wg.Wait()
	assert.Zero(t, atomic.LoadInt32(&violations), "writer overlapped with readers")
}

func TestReentrantRWLock_CancelledAcquire(t *testing.T) {
	l := NewReentrantRWLock()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = l.WithWriteLock(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.WithWriteLock(ctx, func(context.Context) error {
		t.Error("body must not run after cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	err = l.WithReadLock(ctx, func(context.Context) error { return nil })
	require.Error(t, err)

	close(release)
}

func TestReentrantRWLock_ErrorReleases(t *testing.T) {
	l := NewReentrantRWLock()
	boom := errors.New("boom")

	err := l.WithWriteLock(context.Background(), func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)

	// The lock must be free again after a failing block.
	err = l.WithWriteLock(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)

	err = l.WithReadLock(context.Background(), func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)

	err = l.WithWriteLock(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)
}

func TestReentrantRWLock_FlagsScopedPerLock(t *testing.T) {
	l1 := NewReentrantRWLock()
	l2 := NewReentrantRWLock()

	err := l1.WithWriteLock(context.Background(), func(ctx context.Context) error {
		assert.True(t, l1.HoldsWrite(ctx))
		assert.False(t, l2.HoldsWrite(ctx), "flags must not leak across lock instances")
		return l2.WithReadLock(ctx, func(ctx context.Context) error {
			assert.True(t, l2.HoldsRead(ctx))
			assert.False(t, l2.HoldsWrite(ctx))
			return nil
		})
	})
	require.NoError(t, err)
}
