package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	baseTTL   = 30 * 24 * time.Hour
	ttlJitter = 60 // minutes
)

// RedisStore keeps each cart as one JSON blob under cart:<owner>, the
// server-side equivalent of the original's single serialized storage
// entry. TTL is jittered so a fleet's carts do not expire in lockstep.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, owner string) (Cart, bool, error) {
	data, err := s.client.Get(ctx, cartKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, false, nil
	}
	if err != nil {
		return Cart{}, false, fmt.Errorf("redis get: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, false, fmt.Errorf("unmarshal cart: %w", err)
	}
	return c, true, nil
}

func (s *RedisStore) Put(ctx context.Context, owner string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	ttl := baseTTL + time.Duration(rand.Intn(ttlJitter))*time.Minute
	if err := s.client.Set(ctx, cartKey(owner), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, owner string) error {
	if err := s.client.Del(ctx, cartKey(owner)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func cartKey(owner string) string {
	return "cart:" + owner
}
