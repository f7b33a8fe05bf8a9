package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FlagStore is the short-lived storage scope holding authentication flags.
type FlagStore interface {
	Set(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// RedisFlagStore keeps flags as Redis keys with an expiry.
type RedisFlagStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisFlagStore(rdb *redis.Client, prefix string) *RedisFlagStore {
	return &RedisFlagStore{rdb: rdb, prefix: prefix}
}

func (s *RedisFlagStore) Set(ctx context.Context, key string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.prefix+key, "true", ttl).Err()
}

func (s *RedisFlagStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisFlagStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// MemoryFlagStore keeps flags for the lifetime of the process.
type MemoryFlagStore struct {
	mu    sync.Mutex
	flags map[string]time.Time
	now   func() time.Time
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{
		flags: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (s *MemoryFlagStore) Set(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = s.now().Add(ttl)
	return nil
}

func (s *MemoryFlagStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.flags[key]
	if !ok {
		return false, nil
	}
	if s.now().After(expiresAt) {
		delete(s.flags, key)
		return false, nil
	}
	return true, nil
}

func (s *MemoryFlagStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flags, key)
	return nil
}
