package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/core"
)

// Chunking defaults for textual content.
const (
	defaultChunkSize = 500
	textChunkOverlap = 100
	codeChunkOverlap = 200
)

// TextExtractor extracts plain-text files: read as UTF-8, split with a
// recursive character splitter, one chunk per split.
type TextExtractor struct {
	embedder     ai.Embedder
	chunkSize    int
	chunkOverlap int
	separators   []string
	logger       *slog.Logger
}

var _ Extractor = (*TextExtractor)(nil)

// TextOption configures a TextExtractor.
type TextOption func(*TextExtractor)

// WithChunkSize overrides the default chunk size.
func WithChunkSize(size int) TextOption {
	return func(e *TextExtractor) {
		if size > 0 {
			e.chunkSize = size
		}
	}
}

// WithChunkOverlap overrides the default chunk overlap.
func WithChunkOverlap(overlap int) TextOption {
	return func(e *TextExtractor) {
		if overlap >= 0 {
			e.chunkOverlap = overlap
		}
	}
}

// NewTextExtractor creates a text extractor.
func NewTextExtractor(embedder ai.Embedder, opts ...TextOption) (*TextExtractor, error) {
	if embedder == nil {
		return nil, errors.New("embedder required")
	}

	e := &TextExtractor{
		embedder:     embedder,
		chunkSize:    defaultChunkSize,
		chunkOverlap: textChunkOverlap,
		separators:   defaultSeparators,
		logger:       slog.Default().With("component", "text-extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract reads, chunks and embeds a text file.
func (e *TextExtractor) Extract(ctx context.Context, path, owner string) (*core.File, error) {
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

	file, err := e.chunkText(string(raw), metadata)
	if err != nil {
		return nil, err
	}

	if err := embedTextChunks(ctx, e.embedder, file); err != nil {
		return nil, err
	}
	return file, nil
}

// chunkText splits content and assembles the chunk list under metadata.
func (e *TextExtractor) chunkText(content string, metadata core.Metadata) (*core.File, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(e.chunkSize),
		textsplitter.WithChunkOverlap(e.chunkOverlap),
		textsplitter.WithSeparators(e.separators),
	)

	splits, err := splitter.SplitText(content)
	if err != nil {
		return nil, fmt.Errorf("%w: splitting %s: %v", core.ErrFileNotValid, metadata.FileID, err)
	}

	e.logger.Debug("split text", "fileId", metadata.FileID, "chunks", len(splits))

	ids := core.ChunkIDs(metadata.FileID, len(splits))
	chunks, err := core.BuildChunks(ids, splits, metadata)
	if err != nil {
		return nil, err
	}

	return &core.File{
		Metadata: metadata,
		Content:  content,
		Chunks:   chunks,
	}, nil
}
