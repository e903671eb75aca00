package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	local, err := NewLocal(t.TempDir(), nil)
	require.NoError(t, err)
	return local
}

func TestLocalSaveAndLoad(t *testing.T) {
	local := newTestLocal(t)
	ctx := context.Background()

	key, err := local.Save(ctx, "notes.pdf", []byte("conteudo"))
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", key)

	data, err := local.Load(ctx, "notes.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("conteudo"), data)

	exists, err := local.Exists(ctx, "notes.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalLoadMissing(t *testing.T) {
	local := newTestLocal(t)

	_, err := local.Load(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalDeleteIsIdempotent(t *testing.T) {
	local := newTestLocal(t)
	ctx := context.Background()

	_, err := local.Save(ctx, "a.txt", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, local.Delete(ctx, "a.txt"))
	// Compensation may run twice; the second delete must not fail.
	require.NoError(t, local.Delete(ctx, "a.txt"))

	exists, err := local.Exists(ctx, "a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalRejectsPathTraversal(t *testing.T) {
	local := newTestLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape.txt", "dir/file.txt", "..\\escape.txt"} {
		_, err := local.Save(ctx, key, []byte("x"))
		assert.Error(t, err, "key %q should be rejected", key)
	}
}
