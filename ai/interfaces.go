package ai

import "context"

// Embedder generates vector embeddings for chunk content.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedImage generates a vector embedding for a base64-encoded image
	// payload, in the same vector space as the text embeddings.
	EmbedImage(ctx context.Context, encoded string) ([]float32, error)
}
