package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataiesb/pnaes/cache"
	"github.com/dataiesb/pnaes/cache/memory"
)

func TestStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Set(ctx, "k", "v", 0))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestStoreMiss(t *testing.T) {
	s := memory.New()

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestStoreDel(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Set(ctx, "k", "v", 0))
	require.NoError(t, s.Del(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	assert.NoError(t, s.Del(ctx, "k"), "deleting a missing key is a no-op")
}

func TestStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Set(ctx, "k", "v1", 0))
	require.NoError(t, s.Set(ctx, "k", "v2", 0))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func TestStorePing(t *testing.T) {
	assert.NoError(t, memory.New().Ping(context.Background()))
}
