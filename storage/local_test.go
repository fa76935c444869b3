package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuvault/models"
)

func TestLocalRoundTrip(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("quarterly report body")
	key, err := store.Put(ctx, content, "report.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, key)
	assert.Equal(t, ".pdf", filepath.Ext(key))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalKeysAreUnique(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	k1, err := store.Put(ctx, []byte("a"), "same.txt")
	require.NoError(t, err)
	k2, err := store.Put(ctx, []byte("b"), "same.txt")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestLocalGetMissingKey(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "deadbeef.bin")
	var nf models.ErrorNotFound
	assert.True(t, errors.As(err, &nf))
}

func TestLocalDeleteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("bytes"), "note.txt")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Get(ctx, key)
	var nf models.ErrorNotFound
	assert.True(t, errors.As(err, &nf))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalRejectsPathKeys(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "../outside.txt")
	var nf models.ErrorNotFound
	assert.True(t, errors.As(err, &nf))

	assert.NoError(t, store.Delete(ctx, "../outside.txt"))
}
