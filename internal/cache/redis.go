package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tea-backend/internal/logger"
)

// LastRunKey holds the JSON summary of the most recent finished run.
const LastRunKey = "tea-seeder:last-run"

var (
	// ErrLocked is returned when another run holds the run lock.
	ErrLocked = errors.New("another seeder run is in progress")
	// ErrNotConfigured is returned by reads when no Redis address is set.
	ErrNotConfigured = errors.New("redis not configured")
	// ErrNoLastRun is returned when no finished run has been cached.
	ErrNoLastRun = errors.New("no run summary cached")
)

var (
	client *redis.Client
	locker *redislock.Client
)

// Init connects to Redis. An empty addr leaves caching disabled.
func Init(addr, password string) error {
	if addr == "" {
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		// Close the failed client for graceful degradation
		c.Close()
		return err
	}
	client = c
	locker = redislock.New(c)
	return nil
}

// Close releases the connection.
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	locker = nil
	return err
}

// AcquireRunLock takes the exclusive seeder lock and refreshes it every half
// TTL until released, so a run longer than the TTL keeps it. Without Redis
// exclusive ownership of the database is assumed and the returned release is
// a no-op.
func AcquireRunLock(ctx context.Context, key string, ttl time.Duration) (release func(), err error) {
	if locker == nil {
		logger.Warn("redis not configured; proceeding without run lock", zap.String("key", key))
		return func() {}, nil
	}

	lock, err := locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain run lock: %w", err)
	}

	logger.Debug("run lock obtained", zap.String("key", key), zap.Duration("ttl", ttl))
	stop := keepAlive(ttl/2, func(ctx context.Context) error {
		return lock.Refresh(ctx, ttl, nil)
	})
	return func() {
		stop()
		// the run context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.Warn("failed to release run lock", zap.Error(err))
		}
	}, nil
}

// SetLastRun stores the summary of a finished run.
func SetLastRun(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, LastRunKey, data, 0).Err(); err != nil {
		logger.Warn("failed to cache run summary", zap.Error(err))
	}
}

// GetLastRun returns the summary of the most recent run.
func GetLastRun(ctx context.Context) ([]byte, error) {
	if client == nil {
		return nil, ErrNotConfigured
	}
	data, err := client.Get(ctx, LastRunKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoLastRun
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run summary: %w", err)
	}
	return data, nil
}

// keepAlive calls refresh every interval until the returned stop is called.
// stop waits for an in-flight refresh to finish. A failed refresh is logged
// and retried on the next tick; once the lock is gone refreshing stops.
func keepAlive(interval time.Duration, refresh func(context.Context) error) (stop func()) {
	if interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := refresh(ctx)
				if err == nil {
					continue
				}
				if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, redislock.ErrLockNotHeld) {
					logger.Error("run lock lost", zap.Error(err))
					return
				}
				if ctx.Err() == nil {
					logger.Warn("failed to refresh run lock", zap.Error(err))
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
