package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// EmbeddingDim is the dimensionality of every vector written to the index.
// Vectors of any other length are rejected before the remote call.
const EmbeddingDim = 1024

// Metadata describes a single ingested file. It is attached verbatim to every
// chunk derived from the file and stored alongside the vectors and the catalog
// record.
type Metadata struct {
	FileID    string
	FileName  string
	FileType  string // normalized extension, no leading dot
	Owner     string
	Digest    string // blake2b fingerprint of the raw file content
	CreatedAt time.Time
}

// NewMetadata derives the metadata for a file owned by owner.
// The file id is stable for the lifetime of the file and doubles as the
// vector-index primary key and the blob key prefix.
func NewMetadata(fileName, fileType, owner string) Metadata {
	return Metadata{
		FileID:    fmt.Sprintf("%s/%s/%s", owner, fileType, fileName),
		FileName:  fileName,
		FileType:  fileType,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
}

// Map returns the metadata as a flat string map for stores that take
// free-form key/value attributes.
func (m Metadata) Map() map[string]string {
	return map[string]string{
		"fileId":    m.FileID,
		"fileName":  m.FileName,
		"fileType":  m.FileType,
		"owner":     m.Owner,
		"digest":    m.Digest,
		"createdAt": m.CreatedAt.Format(time.RFC3339),
	}
}

// Digest computes a deterministic fingerprint of raw content.
// Identical content always produces the identical digest.
func Digest(content []byte) string {
	h, _ := blake2b.New(16, nil)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// Chunk is a unit of content ready for embedding and storage: a text split or
// a single rendered page. Content holds UTF-8 text for textual chunks and a
// base64-encoded JPEG payload for image chunks.
type Chunk struct {
	ID        string
	Content   string
	Metadata  Metadata
	Embedding []float32 // nil until the embedding gateway has run
}

// File is the unit the pipeline operates on. It is constructed fresh per
// ingestion call, never mutated after embedding, and discarded once the
// pipeline returns.
type File struct {
	Metadata Metadata
	Content  string   // raw text for text/code files, empty for paginated content
	Pages    []string // base64 JPEG pages for image/PDF/Word files
	Chunks   []Chunk
}

// ChunkIDs generates the chunk id sequence for a multi-chunk file:
// fileID/chunk1, fileID/chunk2, ... with no gaps.
func ChunkIDs(fileID string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s/chunk%d", fileID, i+1)
	}
	return ids
}

// BuildChunks pairs ids with content splits under the shared metadata.
// The two slices must be the same length.
func BuildChunks(ids, splits []string, metadata Metadata) ([]Chunk, error) {
	if len(ids) != len(splits) {
		return nil, fmt.Errorf("%w: %d ids for %d splits", ErrChunkMismatch, len(ids), len(splits))
	}
	chunks := make([]Chunk, len(ids))
	for i := range ids {
		chunks[i] = Chunk{
			ID:       ids[i],
			Content:  splits[i],
			Metadata: metadata,
		}
	}
	return chunks, nil
}
