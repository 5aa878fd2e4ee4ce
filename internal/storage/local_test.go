package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	// directory does not exist yet; Put creates it
	info, err := store.Put(ctx, "x.txt", strings.NewReader("C"), PutObjectOptions{Size: 1, ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "x.txt", info.Key)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "x.txt")), info.Path)
	assert.Equal(t, int64(1), info.Size)

	rc, got, err := store.Get(ctx, "x.txt")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "C", string(body))
	assert.Equal(t, int64(1), got.Size)
}

func TestLocalStorage_Overwrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Put(ctx, "same.bin", strings.NewReader("first version, longer"), PutObjectOptions{Size: -1})
	require.NoError(t, err)
	_, err = store.Put(ctx, "same.bin", strings.NewReader("second"), PutObjectOptions{Size: -1})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "same.bin"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorage_GetMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	rc, _, err := store.Get(context.Background(), "nope.txt")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.Nil(t, rc)
}

func TestLocalStorage_RejectsPathKeys(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../etc/passwd", "a/b.txt", `a\b.txt`} {
		_, err := store.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{})
		assert.ErrorIs(t, err, ErrInvalidKey, key)

		_, _, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocalStorage_UnwritableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// a regular file where the directory should be
	store, err := NewLocal(filepath.Join(blocker, "uploads"))
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "a.txt", strings.NewReader("x"), PutObjectOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create upload dir")
}

func TestNewLocal_RequiresDir(t *testing.T) {
	store, err := NewLocal("")
	assert.Error(t, err)
	assert.Nil(t, store)
}
