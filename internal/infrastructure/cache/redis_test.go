package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylelens/backend/internal/domain"
)

var (
	_ domain.CacheRepository = (*MemoryCache)(nil)
	_ domain.CacheRepository = (*RedisCache)(nil)
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not a url", "test:")
	assert.Error(t, err)
}

// Runs only against a live Redis, e.g. STYLELENS_TEST_REDIS_ADDR=redis://localhost:6379/15
func TestRedisCache_RoundTrip(t *testing.T) {
	url := os.Getenv("STYLELENS_TEST_REDIS_ADDR")
	if url == "" {
		t.Skip("STYLELENS_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, "stylelens-test:")
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "k"))
	exists, _ = c.Exists(ctx, "k")
	assert.False(t, exists)
}
