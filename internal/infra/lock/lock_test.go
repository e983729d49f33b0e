package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis поднимает miniredis и клиента к нему
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestKey(t *testing.T) {
	assert.Equal(t, "reservation_lock:venue-1:2024-01-01", Key("venue-1", "2024-01-01"))
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, nil)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "venue-1", "2024-01-01")
	require.NoError(t, err)
	assert.True(t, mr.Exists(Key("venue-1", "2024-01-01")))

	ttl := mr.TTL(Key("venue-1", "2024-01-01"))
	assert.Greater(t, ttl, time.Duration(0))

	release()
	assert.False(t, mr.Exists(Key("venue-1", "2024-01-01")))
}

func TestRedisLocker_BusyWhileHeld(t *testing.T) {
	client, _ := setupTestRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, nil)
	locker.wait = 100 * time.Millisecond
	locker.retryInterval = 10 * time.Millisecond

	release, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	require.NoError(t, err)
	defer release()

	_, err = locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	assert.ErrorIs(t, err, ErrLockBusy)

	// другой день не блокируется
	other, err := locker.Acquire(context.Background(), "venue-1", "2024-01-02")
	require.NoError(t, err)
	other()
}

func TestRedisLocker_ReleaseDoesNotDeleteForeignLock(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, nil)
	key := Key("venue-1", "2024-01-01")

	release, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	require.NoError(t, err)

	// ключ истек и его захватил другой владелец
	mr.FastForward(10 * time.Second)
	require.NoError(t, mr.Set(key, "someone-else"))

	release()

	value, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", value)
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	client, _ := setupTestRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, nil)
	locker.retryInterval = 5 * time.Millisecond

	release, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	require.NoError(t, err)

	go func() {
		time.Sleep(30 * time.Millisecond)
		release()
	}()

	second, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	require.NoError(t, err)
	second()
}

func TestRedisLocker_BackendError(t *testing.T) {
	client, mr := setupTestRedis(t)
	locker := NewRedisLocker(client, time.Second, nil)
	mr.Close()

	_, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	assert.ErrorIs(t, err, ErrLockBackend)
}

func TestLocalLocker_MutualExclusion(t *testing.T) {
	locker := NewLocalLocker()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
			require.NoError(t, err)

			n := atomic.AddInt32(&inside, 1)
			for {
				seen := atomic.LoadInt32(&maxSeen)
				if n <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)

			release()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
	assert.Zero(t, locker.Len())
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	locker := NewLocalLocker()

	release, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Acquire(ctx, "venue-1", "2024-01-01")
	assert.ErrorIs(t, err, ErrLockBusy)
}

func TestLocalLocker_ReleasedKeysAreEvicted(t *testing.T) {
	locker := NewLocalLocker()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		release, err := locker.Acquire(context.Background(), "venue-1", date)
		require.NoError(t, err)
		assert.Equal(t, 1, locker.Len())
		release()
	}
	assert.Zero(t, locker.Len())

	// ключ живет, пока его держат, даже если ожидающий сдался
	release, err := locker.Acquire(context.Background(), "venue-1", "2024-01-01")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "venue-1", "2024-01-01")
	assert.ErrorIs(t, err, ErrLockBusy)
	assert.Equal(t, 1, locker.Len())

	release()
	assert.Zero(t, locker.Len())
}
