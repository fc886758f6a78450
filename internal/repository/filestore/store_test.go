package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := New(path, "")

	_, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok, "a missing file is an empty store")
	require.NoError(t, s.Delete(ctx, "token"))

	require.NoError(t, s.Set(ctx, "token", "abc"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a second store over the same file sees the value
	value, ok, err := New(path, "").Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	require.NoError(t, s.Delete(ctx, "token"))
	_, ok, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSealedStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "token")
	s := New(path, "correct horse")

	require.NoError(t, s.Set(ctx, "token", "secret-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")
	assert.Equal(t, "PSB1", string(raw[:4]))

	value, ok, err := New(path, "correct horse").Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret-token", value)

	_, _, err = New(path, "wrong").Get(ctx, "token")
	assert.ErrorIs(t, err, ErrWrongPassphrase)

	_, _, err = New(path, "").Get(ctx, "token")
	assert.ErrorIs(t, err, ErrSealed)
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := New(path, "").Get(context.Background(), "token")
	assert.Error(t, err)
}
