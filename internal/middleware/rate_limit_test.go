package middleware

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, requests int) (*RedisRateLimiterStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	return NewRedisRateLimiterStore(client, requests, time.Minute, &logger), mr
}

func TestRedisRateLimiterStore(t *testing.T) {
	t.Run("DeniesPastBudget", func(t *testing.T) {
		store, _ := newTestStore(t, 3)
		fixed := time.Date(2024, 1, 1, 12, 0, 10, 0, time.UTC)
		store.now = func() time.Time { return fixed }

		for i := 0; i < 3; i++ {
			allowed, err := store.Allow("10.0.0.1")
			require.NoError(t, err)
			assert.True(t, allowed, "request %d", i+1)
		}

		allowed, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.False(t, allowed)

		allowed, err = store.Allow("10.0.0.2")
		require.NoError(t, err)
		assert.True(t, allowed, "other identifiers have their own budget")
	})

	t.Run("NewWindowResets", func(t *testing.T) {
		store, _ := newTestStore(t, 1)
		current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return current }

		allowed, _ := store.Allow("ip")
		assert.True(t, allowed)
		allowed, _ = store.Allow("ip")
		assert.False(t, allowed)

		current = current.Add(time.Minute)
		allowed, _ = store.Allow("ip")
		assert.True(t, allowed)
	})

	t.Run("SetsExpiry", func(t *testing.T) {
		store, mr := newTestStore(t, 5)
		store.now = func() time.Time { return time.Unix(120, 0) }

		_, err := store.Allow("ip")
		require.NoError(t, err)
		assert.Equal(t, time.Minute, mr.TTL("ratelimit:ip:120"))
	})

	t.Run("FailsOpen", func(t *testing.T) {
		store, mr := newTestStore(t, 1)
		mr.Close()

		for i := 0; i < 3; i++ {
			allowed, err := store.Allow("ip")
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})
}
