package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_setGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStorage(filepath.Join(t.TempDir(), "nested", "storage.json"))
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "auth_token", "abc"))
	require.NoError(t, s.Set(ctx, "auth-storage", `{"isAuthenticated":true}`))

	v, ok, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Delete(ctx, "auth_token"))
	require.NoError(t, s.Delete(ctx, "auth_token"))

	_, ok, err = s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)

	v, _, _ = s.Get(ctx, "auth-storage")
	assert.Equal(t, `{"isAuthenticated":true}`, v)
}

func TestFileStorage_survivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	s1, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "auth_token", "persisted"))

	s2, err := NewFileStorage(path)
	require.NoError(t, err)
	v, ok, err := s2.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestFileStorage_corruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStorage(path)
	require.NoError(t, err)
	_, _, err = s.Get(context.Background(), "auth_token")
	assert.ErrorContains(t, err, "corrupt")
}
