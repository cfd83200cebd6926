package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCache(t *testing.T) {
	cache, err := NewFormatCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	hash := Hash([]byte("x = 1\n"))

	t.Run("unknown file is not formatted", func(t *testing.T) {
		ok, err := cache.IsFormatted(ctx, "a.py", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("marked file is formatted", func(t *testing.T) {
		require.NoError(t, cache.MarkFormatted(ctx, "a.py", hash))
		ok, err := cache.IsFormatted(ctx, "a.py", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("content change invalidates the entry", func(t *testing.T) {
		ok, err := cache.IsFormatted(ctx, "a.py", Hash([]byte("x = 2\n")))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remarking updates the hash", func(t *testing.T) {
		newHash := Hash([]byte("x = 2\n"))
		require.NoError(t, cache.MarkFormatted(ctx, "a.py", newHash))
		ok, err := cache.IsFormatted(ctx, "a.py", newHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestHash_Stable(t *testing.T) {
	assert.Equal(t, Hash([]byte("abc")), Hash([]byte("abc")))
	assert.NotEqual(t, Hash([]byte("abc")), Hash([]byte("abd")))
}
