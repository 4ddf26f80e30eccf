package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tea-backend/internal/logger"
)

func init() {
	logger.Set(zap.NewNop())
}

func TestInit_EmptyAddrDisablesCache(t *testing.T) {
	require.NoError(t, Init("", ""))
	assert.Nil(t, client)
	assert.Nil(t, locker)
}

func TestInit_UnreachableRedis(t *testing.T) {
	err := Init("127.0.0.1:1", "")
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestAcquireRunLock_WithoutRedis(t *testing.T) {
	require.NoError(t, Close())

	release, err := AcquireRunLock(context.Background(), "tea-seeder:run", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, release)
	release()
}

func TestLastRun_WithoutRedis(t *testing.T) {
	SetLastRun(context.Background(), []byte(`{}`))
	_, err := GetLastRun(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestKeepAlive_RefreshesUntilStopped(t *testing.T) {
	var calls atomic.Int32
	stop := keepAlive(5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	stop()
	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())

	// a second stop is harmless
	stop()
}

func TestKeepAlive_StopsWhenLockLost(t *testing.T) {
	var calls atomic.Int32
	stop := keepAlive(5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return redislock.ErrNotObtained
	})
	defer stop()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestKeepAlive_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	stop := keepAlive(5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("i/o timeout")
	})
	defer stop()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
}

func TestKeepAlive_NonPositiveIntervalIsNoop(t *testing.T) {
	stop := keepAlive(0, func(ctx context.Context) error {
		t.Fatal("refresh should not run")
		return nil
	})
	stop()
}
