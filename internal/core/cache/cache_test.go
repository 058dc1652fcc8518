package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadListCachesResult(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	var calls atomic.Int32
	load := func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"Prayer", "Theology"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoadList(c, ctx, "categories", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"Prayer", "Theology"}, got)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, mr.Exists("gospelreach:categories"))

	mr.FastForward(2 * time.Minute)
	_, err := GetOrLoadList(c, ctx, "categories", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetOrLoadListSkipsEmpty(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	var calls atomic.Int32
	load := func(context.Context) ([]string, error) {
		calls.Add(1)
		return nil, nil
	}

	for i := 0; i < 2; i++ {
		got, err := GetOrLoadList(c, ctx, "categories", time.Minute, load)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, mr.Exists("gospelreach:categories"))
}

func TestGetOrLoadListReloadsCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("gospelreach:categories", "{not json"))

	got, err := GetOrLoadList(c, context.Background(), "categories", time.Minute, func(context.Context) ([]string, error) {
		return []string{"Prayer"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Prayer"}, got)
	assert.False(t, mr.Exists("gospelreach:categories"))
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("gospelreach:k"))
}

func TestGetOrLoadFallsBackWhenRedisIsDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte(`"v"`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, `"v"`, string(b))
}

func TestInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("gospelreach:a", "1"))
	require.NoError(t, c.Invalidate(context.Background(), "a"))
	assert.False(t, mr.Exists("gospelreach:a"))
	assert.NoError(t, c.Invalidate(context.Background()))
}
