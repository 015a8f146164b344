package storage

import (
	"context"
	"io"

	"github.com/veldtlabs/multirag/core"
)

// VectorStore is the remote vector index consumed by the uploaders.
// Upsert must overwrite by id, never duplicate.
type VectorStore interface {
	// Upsert writes a single vector under id into the given namespace.
	// Re-upserting the same id overwrites the existing entry.
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string, namespace string) error

	// Delete removes the entry with the given id from the namespace.
	// Deleting a missing id is not an error.
	Delete(ctx context.Context, id string, namespace string) error

	// Query returns the topK entries closest to vector in the namespace,
	// ordered by descending score.
	Query(ctx context.Context, vector []float32, namespace string, topK int) ([]QueryMatch, error)
}

// QueryMatch is a single vector-store search hit.
type QueryMatch struct {
	ID       string
	Score    float32
	Metadata map[string]string
}

// BlobStore is the remote object store holding raw and rendered chunk
// content, keyed by chunk id.
type BlobStore interface {
	// Exists reports whether an object is already stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Put writes the object under key.
	Put(ctx context.Context, key string, body io.Reader) error

	// Get reads the object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object under key.
	// Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Catalog records file existence per owner for later listing and cleanup.
// It is not part of the transactional store pair: its write is best-effort
// and never rolled back.
type Catalog interface {
	// Put records that the file described by metadata exists.
	Put(ctx context.Context, metadata core.Metadata) error

	// List returns the metadata of every file recorded for owner.
	List(ctx context.Context, owner string) ([]core.Metadata, error)

	// Delete removes the record for the given owner and file id.
	Delete(ctx context.Context, owner, fileID string) error

	// Close releases resources held by the catalog backend.
	Close() error
}
