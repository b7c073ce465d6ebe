package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestGetMissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	var dest []string
	err := c.GetJSON(context.Background(), "nope", &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestJSONRoundTripAndExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "ai:budget:abc", []string{"💐 Save on flowers"}, time.Minute))
	assert.True(t, mr.Exists("vivaha:ai:budget:abc"))

	var got []string
	require.NoError(t, c.GetJSON(ctx, "ai:budget:abc", &got))
	assert.Equal(t, []string{"💐 Save on flowers"}, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.GetJSON(ctx, "ai:budget:abc", &got), ErrCacheMiss)
}

func TestGetJSONCorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("vivaha:share:tok", "{not json"))

	var dest map[string]any
	err := c.GetJSON(context.Background(), "share:tok", &dest)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "share:tok", map[string]string{"userId": "user-1"}, time.Hour))
	require.NoError(t, c.Delete(ctx, "share:tok"))

	assert.False(t, mr.Exists("vivaha:share:tok"))
}

func TestBareHostPort(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(mr.Addr())
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache("redis://127.0.0.1:1")
	assert.Error(t, err)
}
