package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	var c Cart
	c.AddProduct(product("p1", 1299, 7), 2)
	c.AddProduct(product("p2", 500, 3), 1)

	require.NoError(t, store.Put(ctx, "u_1", c))

	// A reload must come back item for item, snapshots included.
	got, found, err := store.Get(ctx, "u_1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, c.Items, got.Items)
	assert.Equal(t, c.TotalCents(), got.TotalCents())
}

func TestRedisStore_MissingOwner(t *testing.T) {
	store, _ := setupRedisStore(t)

	_, found, err := store.Get(context.Background(), "u_nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	store, mr := setupRedisStore(t)

	require.NoError(t, mr.Set(cartKey("u_1"), `{"items": [`))

	_, _, err := store.Get(context.Background(), "u_1")
	require.ErrorContains(t, err, "unmarshal cart")
}

func TestRedisStore_PutSetsJitteredTTL(t *testing.T) {
	store, mr := setupRedisStore(t)

	var c Cart
	c.AddProduct(product("p1", 100, 1), 1)
	require.NoError(t, store.Put(context.Background(), "u_1", c))

	ttl := mr.TTL(cartKey("u_1"))
	assert.GreaterOrEqual(t, ttl, baseTTL)
	assert.LessOrEqual(t, ttl, baseTTL+ttlJitter*time.Minute)
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	var c Cart
	c.AddProduct(product("p1", 100, 1), 1)
	require.NoError(t, store.Put(ctx, "u_1", c))
	require.True(t, mr.Exists(cartKey("u_1")))

	require.NoError(t, store.Delete(ctx, "u_1"))
	assert.False(t, mr.Exists(cartKey("u_1")))

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, "u_1"))
}
