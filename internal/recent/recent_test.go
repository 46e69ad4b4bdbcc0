package recent

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// Both implementations must agree on ordering and dedupe.
	return map[string]Store{
		"redis": NewRedisStore(client),
		"mem":   NewMemStore(),
	}
}

func TestStore_MostRecentFirst(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Record(ctx, "u_1", "p1"))
			require.NoError(t, store.Record(ctx, "u_1", "p2"))
			require.NoError(t, store.Record(ctx, "u_1", "p3"))

			ids, err := store.List(ctx, "u_1")
			require.NoError(t, err)
			assert.Equal(t, []string{"p3", "p2", "p1"}, ids)
		})
	}
}

func TestStore_RevisitMovesToFront(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Record(ctx, "u_1", "p1"))
			require.NoError(t, store.Record(ctx, "u_1", "p2"))
			require.NoError(t, store.Record(ctx, "u_1", "p1"))

			ids, err := store.List(ctx, "u_1")
			require.NoError(t, err)
			assert.Equal(t, []string{"p1", "p2"}, ids)
		})
	}
}

func TestStore_CapsAtMaxTracked(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 0; i < MaxTracked+3; i++ {
				require.NoError(t, store.Record(ctx, "u_1", fmt.Sprintf("p%d", i)))
			}

			ids, err := store.List(ctx, "u_1")
			require.NoError(t, err)
			assert.Len(t, ids, MaxTracked)
			assert.Equal(t, fmt.Sprintf("p%d", MaxTracked+2), ids[0])
		})
	}
}

func TestStore_UsersAreIsolated(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Record(ctx, "u_1", "p1"))

			ids, err := store.List(ctx, "u_2")
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}
