package blob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margianalogistics/logibot/pkg/blob"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	store, err := blob.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("%PDF-1.4 fake report")

	require.NoError(t, store.Put(ctx, "reports/2026/08/ORD-001.pdf", data, "application/pdf"))

	got, err := store.Get(ctx, "reports/2026/08/ORD-001.pdf")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "reports/2026/08/ORD-001.pdf"))

	_, err = store.Get(ctx, "reports/2026/08/ORD-001.pdf")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestLocalStorage_Overwrite(t *testing.T) {
	store, err := blob.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "report.pdf", []byte("v1"), ""))
	require.NoError(t, store.Put(ctx, "report.pdf", []byte("v2"), ""))

	got, err := store.Get(ctx, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestLocalStorage_DeleteMissingIsNoOp(t *testing.T) {
	store, err := blob.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.pdf"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store, err := blob.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	assert.ErrorIs(t, store.Put(ctx, "../escape.pdf", []byte("x"), ""), blob.ErrInvalidKey)
	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, blob.ErrInvalidKey)
}

func TestNewLocalStorage_EmptyDir(t *testing.T) {
	_, err := blob.NewLocalStorage("")
	assert.ErrorIs(t, err, blob.ErrInvalidConfig)
}
