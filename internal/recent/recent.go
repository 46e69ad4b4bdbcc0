// Package recent tracks the products a shopper viewed last, the
// server-side take on the original's recently-viewed storage entry.
package recent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxTracked caps the per-user history; the storefront shows at most
// the first few.
const MaxTracked = 8

type Store interface {
	Record(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]string, error)
}

// RedisStore keeps one list per user, most recent first, deduplicated.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: 14 * 24 * time.Hour}
}

func (s *RedisStore) Record(ctx context.Context, userID, productID string) error {
	key := recentKey(userID)

	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, productID)
	pipe.LPush(ctx, key, productID)
	pipe.LTrim(ctx, key, 0, MaxTracked-1)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record recent: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.client.LRange(ctx, recentKey(userID), 0, MaxTracked-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list recent: %w", err)
	}
	return ids, nil
}

func recentKey(userID string) string {
	return "recent:" + userID
}

// MemStore mirrors RedisStore's ordering and dedupe semantics.
type MemStore struct {
	mu sync.Mutex
	m  map[string][]string
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string][]string)}
}

func (s *MemStore) Record(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.m[userID]
	out := make([]string, 0, len(ids)+1)
	out = append(out, productID)
	for _, id := range ids {
		if id != productID {
			out = append(out, id)
		}
	}
	if len(out) > MaxTracked {
		out = out[:MaxTracked]
	}
	s.m[userID] = out
	return nil
}

func (s *MemStore) List(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.m[userID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}
