package extract

import (
	"context"
	"errors"
	"log/slog"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/core"
)

// CodeExtractor extracts source-code files. It is a text extractor whose
// splitting rules are selected per detected language, so chunks break at
// declaration boundaries instead of mid-function.
type CodeExtractor struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ Extractor = (*CodeExtractor)(nil)

// NewCodeExtractor creates a code extractor.
func NewCodeExtractor(embedder ai.Embedder) (*CodeExtractor, error) {
	if embedder == nil {
		return nil, errors.New("embedder required")
	}
	return &CodeExtractor{
		embedder: embedder,
		logger:   slog.Default().With("component", "code-extractor"),
	}, nil
}

// Extract reads, chunks and embeds a source file with language-aware rules.
func (e *CodeExtractor) Extract(ctx context.Context, path, owner string) (*core.File, error) {
	_, ft, err := core.FileTypeFromPath(path)
	if err != nil {
		return nil, err
	}

	lang := ft.Language()
	e.logger.Debug("extracting code", "path", path, "language", lang)

	inner := &TextExtractor{
		embedder:     e.embedder,
		chunkSize:    defaultChunkSize,
		chunkOverlap: codeChunkOverlap,
		separators:   separatorsFor(lang),
		logger:       e.logger,
	}
	return inner.Extract(ctx, path, owner)
}
