package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/core"
)

// ImageExtractor extracts single raster images. The normalized page becomes
// exactly one chunk whose id is the bare file id.
type ImageExtractor struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ Extractor = (*ImageExtractor)(nil)

// NewImageExtractor creates an image extractor.
func NewImageExtractor(embedder ai.Embedder) (*ImageExtractor, error) {
	if embedder == nil {
		return nil, errors.New("embedder required")
	}
	return &ImageExtractor{
		embedder: embedder,
		logger:   slog.Default().With("component", "image-extractor"),
	}, nil
}

// Extract decodes, normalizes and embeds a raster image.
func (e *ImageExtractor) Extract(ctx context.Context, path, owner string) (*core.File, error) {
	if err := core.ValidatePath(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", core.ErrFileNotValid, path, err)
	}

	metadata, err := deriveMetadata(path, owner, raw)
	if err != nil {
		return nil, err
	}

	encoded, err := processImage(raw)
	if err != nil {
		e.logger.Error("image processing failed", "path", path, "err", err)
		return nil, err
	}

	file := &core.File{
		Metadata: metadata,
		Pages:    []string{encoded},
		Chunks: []core.Chunk{{
			ID:       metadata.FileID,
			Content:  encoded,
			Metadata: metadata,
		}},
	}

	if err := embedImageChunks(ctx, e.embedder, file); err != nil {
		return nil, err
	}
	return file, nil
}
