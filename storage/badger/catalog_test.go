package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/storage"
)

func setupCatalog(t *testing.T) *Catalog {
	t.Helper()

	catalog, err := NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	return catalog
}

func testMetadata(owner, name, fileType string) core.Metadata {
	m := core.NewMetadata(name, fileType, owner)
	m.Digest = core.Digest([]byte(name))
	m.CreatedAt = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	return m
}

func TestCatalog_PutAndList(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Put(ctx, testMetadata("alice", "notes", "txt")))
	require.NoError(t, catalog.Put(ctx, testMetadata("alice", "report", "pdf")))
	require.NoError(t, catalog.Put(ctx, testMetadata("bob", "photo", "png")))

	records, err := catalog.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 2)

	ids := []string{records[0].FileID, records[1].FileID}
	assert.Contains(t, ids, "alice/txt/notes")
	assert.Contains(t, ids, "alice/pdf/report")

	records, err = catalog.List(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCatalog_PutOverwrites(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	first := testMetadata("alice", "notes", "txt")
	require.NoError(t, catalog.Put(ctx, first))

	second := first
	second.Digest = core.Digest([]byte("changed"))
	require.NoError(t, catalog.Put(ctx, second))

	records, err := catalog.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, second.Digest, records[0].Digest)
}

func TestCatalog_RoundTripFields(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	want := testMetadata("alice", "notes", "txt")
	require.NoError(t, catalog.Put(ctx, want))

	records, err := catalog.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, want.FileID, got.FileID)
	assert.Equal(t, want.FileName, got.FileName)
	assert.Equal(t, want.FileType, got.FileType)
	assert.Equal(t, want.Owner, got.Owner)
	assert.Equal(t, want.Digest, got.Digest)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "CreatedAt: want %v, got %v", want.CreatedAt, got.CreatedAt)
}

func TestCatalog_Delete(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	m := testMetadata("alice", "notes", "txt")
	require.NoError(t, catalog.Put(ctx, m))

	require.NoError(t, catalog.Delete(ctx, "alice", m.FileID))

	records, err := catalog.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, records)

	err = catalog.Delete(ctx, "alice", m.FileID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
