package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/domain"
)

func TestAvailabilityCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	c := NewAvailabilityCache(client, time.Minute)
	ctx := context.Background()
	items := []domain.Availability{{ID: "a1", UserID: "u1", Date: "2025-03-12", StartTime: "09:00", EndTime: "10:00"}}

	t.Run("Miss", func(t *testing.T) {
		got, ok, err := c.Get(ctx, "u1", "", "")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "u1", "2025-03-01", "2025-03-31", items))

		got, ok, err := c.Get(ctx, "u1", "2025-03-01", "2025-03-31")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "a1", got[0].ID)

		_, ok, _ = c.Get(ctx, "u1", "", "")
		assert.False(t, ok, "ranges are cached separately")
		_, ok, _ = c.Get(ctx, "u2", "2025-03-01", "2025-03-31")
		assert.False(t, ok, "users are cached separately")
	})

	t.Run("InvalidateDropsUserLists", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "u2", "", "", items))
		require.NoError(t, c.Invalidate(ctx, "u1"))

		_, ok, err := c.Get(ctx, "u1", "2025-03-01", "2025-03-31")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, _ = c.Get(ctx, "u2", "", "")
		assert.True(t, ok, "other users keep their cache")
	})

	t.Run("Expires", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "u3", "", "", items))
		s.FastForward(2 * time.Minute)
		_, ok, _ := c.Get(ctx, "u3", "", "")
		assert.False(t, ok)
	})
}
