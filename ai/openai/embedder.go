package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/veldtlabs/multirag/ai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// Text and image payloads may be served by different models on the same
// host, as long as both emit vectors of the same dimensionality.
type Embedder struct {
	text   embeddings.Embedder
	image  embeddings.Embedder
	logger *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	text, err := newModelEmbedder(config, config.TextModel)
	if err != nil {
		return nil, fmt.Errorf("text embedder: %w", err)
	}

	image, err := newModelEmbedder(config, config.ImageModel)
	if err != nil {
		return nil, fmt.Errorf("image embedder: %w", err)
	}

	return &Embedder{
		text:   text,
		image:  image,
		logger: slog.Default().With("component", "openai-embedder"),
	}, nil
}

func newModelEmbedder(config *ai.Config, model string) (embeddings.Embedder, error) {
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := e.text.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}

	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors, err := e.text.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	return vectors, nil
}

// EmbedImage generates a vector embedding for a base64-encoded image payload.
// The payload is passed through the embeddings endpoint of the image model.
func (e *Embedder) EmbedImage(ctx context.Context, encoded string) ([]float32, error) {
	e.logger.Debug("generating embedding for image", "payload_bytes", len(encoded))

	vectors, err := e.image.EmbedDocuments(ctx, []string{encoded})
	if err != nil {
		e.logger.Error("failed to generate image embedding", "err", err)
		return nil, err
	}

	if len(vectors) == 0 {
		e.logger.Warn("image embedder returned empty result")
		return []float32{}, nil
	}

	return vectors[0], nil
}
