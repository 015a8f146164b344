package extract

import (
	"context"
	"fmt"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/core"
)

// Extractor turns a raw file on disk into a fully chunked and embedded File.
//
// Every variant follows the same steps: validate the path, derive metadata,
// load the type-specific content, chunk it, and embed each chunk in order.
// Any step failure aborts extraction; nothing is returned and no uploads are
// attempted. Extractors never retry — that is the caller's decision.
type Extractor interface {
	Extract(ctx context.Context, path, owner string) (*core.File, error)
}

// deriveMetadata validates the path and builds the file metadata, including
// the content digest.
func deriveMetadata(path, owner string, content []byte) (core.Metadata, error) {
	name, ft, err := core.FileTypeFromPath(path)
	if err != nil {
		return core.Metadata{}, err
	}

	metadata := core.NewMetadata(name, string(ft), owner)
	metadata.Digest = core.Digest(content)
	return metadata, nil
}

// embedTextChunks populates embeddings for text chunks in a single batch,
// preserving chunk order.
func embedTextChunks(ctx context.Context, embedder ai.Embedder, file *core.File) error {
	texts := make([]string, len(file.Chunks))
	for i, chunk := range file.Chunks {
		texts[i] = chunk.Content
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %s: %w", file.Metadata.FileID, err)
	}
	if len(vectors) != len(file.Chunks) {
		return fmt.Errorf("%w: %d embeddings for %d chunks",
			core.ErrChunkMismatch, len(vectors), len(file.Chunks))
	}

	for i := range vectors {
		file.Chunks[i].Embedding = vectors[i]
	}
	return nil
}

// embedImageChunks populates embeddings for image chunks one page at a time,
// preserving chunk order.
func embedImageChunks(ctx context.Context, embedder ai.Embedder, file *core.File) error {
	for i := range file.Chunks {
		vector, err := embedder.EmbedImage(ctx, file.Chunks[i].Content)
		if err != nil {
			return fmt.Errorf("embedding %s: %w", file.Chunks[i].ID, err)
		}
		file.Chunks[i].Embedding = vector
	}
	return nil
}
