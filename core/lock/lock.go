package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when the lock is held by someone else.
var ErrNotObtained = errors.New("lock not obtained")

// Release frees a held lock.
type Release func(ctx context.Context) error

// Locker obtains named, expiring locks.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// New builds a Locker from configuration. The returned close function releases
// the underlying connection and is never nil.
func New(cfg Config) (Locker, func() error, error) {
	if cfg.Addr == "" {
		return NewLocal(), func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedis(rdb, cfg.Prefix), rdb.Close, nil
}

// RedisLocker is a distributed Locker backed by redislock.
type RedisLocker struct {
	client *redislock.Client
	prefix string
}

// NewRedis wraps an existing Redis client.
func NewRedis(rdb redislock.RedisClient, prefix string) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), prefix: prefix}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	held, err := l.client.Obtain(ctx, l.prefix+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := held.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}

// LocalLocker excludes holders within the current process only.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]localHold
	seq  uint64
}

type localHold struct {
	token   uint64
	expires time.Time
}

// NewLocal creates an in-process locker.
func NewLocal() *LocalLocker {
	return &LocalLocker{held: make(map[string]localHold)}
}

func (l *LocalLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if h, ok := l.held[key]; ok && now.Before(h.expires) {
		return nil, ErrNotObtained
	}

	l.seq++
	token := l.seq
	l.held[key] = localHold{token: token, expires: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		// An expired hold may already belong to a newer owner.
		if h, ok := l.held[key]; ok && h.token == token {
			delete(l.held, key)
		}
		return nil
	}, nil
}
