package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/multirag/ai/mock"
	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/storage"
)

// newTestPiper wires a piper over in-memory fakes and a deterministic
// embedder.
func newTestPiper(t *testing.T, vectors *fakeVectorStore, blobs *fakeBlobStore, catalog *fakeCatalog) *Piper {
	t.Helper()

	uploader, err := NewStoreUploader(vectors, blobs)
	require.NoError(t, err)

	factory, err := NewFactory(mock.NewEmbedder(), uploader)
	require.NoError(t, err)

	piper, err := NewPiper(factory, catalog)
	require.NoError(t, err)
	t.Cleanup(piper.Close)
	return piper
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPiper_IngestSmallTextFile(t *testing.T) {
	vectors := newFakeVectorStore()
	blobs := newFakeBlobStore()
	catalog := newFakeCatalog()
	piper := newTestPiper(t, vectors, blobs, catalog)

	path := writeTestFile(t, "notes.txt", "twelve bytes")
	require.NoError(t, piper.Ingest(context.Background(), path, "alice"))

	// one chunk, one write to each store, under the deterministic id
	assert.Equal(t, 1, vectors.Upserts())
	assert.Equal(t, 1, blobs.Puts())
	assert.Equal(t, 1, vectors.Count("alice/text"))

	content, err := blobs.Get(context.Background(), "alice/txt/notes/chunk1")
	require.NoError(t, err)
	assert.Equal(t, "twelve bytes", string(content))

	records := catalog.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "alice/txt/notes", records[0].FileID)
	assert.Equal(t, "alice", records[0].Owner)
	assert.NotEmpty(t, records[0].Digest)
}

func TestPiper_ReingestIsIdempotent(t *testing.T) {
	vectors := newFakeVectorStore()
	blobs := newFakeBlobStore()
	piper := newTestPiper(t, vectors, blobs, newFakeCatalog())

	path := writeTestFile(t, "notes.txt", "twelve bytes")
	ctx := context.Background()

	require.NoError(t, piper.Ingest(ctx, path, "alice"))
	require.NoError(t, piper.Ingest(ctx, path, "alice"))

	// vectors overwrite in place, blobs skip the existing key
	assert.Equal(t, 2, vectors.Upserts())
	assert.Equal(t, 1, vectors.Count("alice/text"))
	assert.Equal(t, 1, blobs.Puts())
}

func TestPiper_VectorFailureRollsBackBlob(t *testing.T) {
	vectors := newFakeVectorStore()
	vectors.UpsertFunc = func(ctx context.Context, id string, vector []float32, metadata map[string]string, namespace string) error {
		return errors.New("index unreachable")
	}
	blobs := newFakeBlobStore()
	piper := newTestPiper(t, vectors, blobs, newFakeCatalog())

	path := writeTestFile(t, "notes.txt", "twelve bytes")
	err := piper.Ingest(context.Background(), path, "alice")

	var upsertErr *storage.UpsertionError
	require.ErrorAs(t, err, &upsertErr)
	assert.Equal(t, storage.TargetVectorIndex, upsertErr.Target)

	// the blob write is undone, keyed by the bare file id
	assert.Equal(t, []string{"alice/txt/notes"}, blobs.Deletes())
	assert.Empty(t, vectors.Deletes())
}

func TestPiper_BlobFailureRollsBackVectors(t *testing.T) {
	vectors := newFakeVectorStore()
	blobs := newFakeBlobStore()
	blobs.PutFunc = func(ctx context.Context, key string, body io.Reader) error {
		return errors.New("bucket gone")
	}
	piper := newTestPiper(t, vectors, blobs, newFakeCatalog())

	path := writeTestFile(t, "notes.txt", "twelve bytes")
	err := piper.Ingest(context.Background(), path, "alice")

	var upsertErr *storage.UpsertionError
	require.ErrorAs(t, err, &upsertErr)
	assert.Equal(t, storage.TargetBlobStore, upsertErr.Target)

	assert.Equal(t, []string{"alice/text::alice/txt/notes"}, vectors.Deletes())
	assert.Empty(t, blobs.Deletes())
}

func TestPiper_BothFailuresSkipCompensation(t *testing.T) {
	vectors := newFakeVectorStore()
	vectors.UpsertFunc = func(ctx context.Context, id string, vector []float32, metadata map[string]string, namespace string) error {
		return errors.New("index unreachable")
	}
	blobs := newFakeBlobStore()
	blobs.ExistsFunc = func(ctx context.Context, key string) (bool, error) {
		return false, errors.New("bucket gone")
	}
	piper := newTestPiper(t, vectors, blobs, newFakeCatalog())

	path := writeTestFile(t, "notes.txt", "twelve bytes")
	err := piper.Ingest(context.Background(), path, "alice")

	var agg *storage.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Errs, 2)

	assert.Empty(t, vectors.Deletes())
	assert.Empty(t, blobs.Deletes())
}

func TestPiper_RollbackFailureSurfacesBothErrors(t *testing.T) {
	vectors := newFakeVectorStore()
	vectors.UpsertFunc = func(ctx context.Context, id string, vector []float32, metadata map[string]string, namespace string) error {
		return errors.New("index unreachable")
	}
	blobs := newFakeBlobStore()
	blobs.DeleteFunc = func(ctx context.Context, key string) error {
		return errors.New("delete rejected")
	}
	piper := newTestPiper(t, vectors, blobs, newFakeCatalog())

	path := writeTestFile(t, "notes.txt", "twelve bytes")
	err := piper.Ingest(context.Background(), path, "alice")

	// the original upsert failure stays visible, the orphan alongside it
	var upsertErr *storage.UpsertionError
	require.ErrorAs(t, err, &upsertErr)
	assert.Equal(t, storage.TargetVectorIndex, upsertErr.Target)

	var delErr *storage.DeletionError
	require.ErrorAs(t, err, &delErr)
	assert.Equal(t, storage.TargetBlobStore, delErr.Target)
	assert.Equal(t, "alice/txt/notes", delErr.Key)
}

func TestPiper_CatalogFailureIsNotPropagated(t *testing.T) {
	vectors := newFakeVectorStore()
	blobs := newFakeBlobStore()
	catalog := newFakeCatalog()
	catalog.PutFunc = func(ctx context.Context, metadata core.Metadata) error {
		return errors.New("catalog down")
	}
	piper := newTestPiper(t, vectors, blobs, catalog)

	path := writeTestFile(t, "notes.txt", "twelve bytes")
	assert.NoError(t, piper.Ingest(context.Background(), path, "alice"))
	assert.Equal(t, 1, vectors.Upserts())
	assert.Equal(t, 1, blobs.Puts())
}

func TestPiper_UnsupportedExtension(t *testing.T) {
	vectors := newFakeVectorStore()
	blobs := newFakeBlobStore()
	piper := newTestPiper(t, vectors, blobs, newFakeCatalog())

	path := writeTestFile(t, "archive.tar", "bytes")
	err := piper.Ingest(context.Background(), path, "alice")

	assert.ErrorIs(t, err, core.ErrUnsupportedFileType)
	assert.Equal(t, 0, vectors.Upserts())
	assert.Equal(t, 0, blobs.Puts())
}

func TestNewPiper_RequiresCollaborators(t *testing.T) {
	uploader, err := NewStoreUploader(newFakeVectorStore(), newFakeBlobStore())
	require.NoError(t, err)
	factory, err := NewFactory(mock.NewEmbedder(), uploader)
	require.NoError(t, err)

	_, err = NewPiper(nil, newFakeCatalog())
	assert.ErrorIs(t, err, ErrFactoryRequired)

	_, err = NewPiper(factory, nil)
	assert.ErrorIs(t, err, ErrCatalogRequired)
}
