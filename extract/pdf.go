package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/core"
)

// rasterDPI is the resolution pages are rendered at.
const rasterDPI = "150"

// PDFExtractor rasterizes each page of a PDF to a normalized JPEG chunk.
// One oversized page aborts the whole file.
// TODO: skip only the offending page instead of stopping the whole file.
type PDFExtractor struct {
	embedder ai.Embedder
	runner   CommandRunner
	logger   *slog.Logger
}

var _ Extractor = (*PDFExtractor)(nil)

// NewPDFExtractor creates a PDF extractor rendering through runner.
func NewPDFExtractor(embedder ai.Embedder, runner CommandRunner) (*PDFExtractor, error) {
	if embedder == nil {
		return nil, errors.New("embedder required")
	}
	if runner == nil {
		runner = NewCommandRunner()
	}
	return &PDFExtractor{
		embedder: embedder,
		runner:   runner,
		logger:   slog.Default().With("component", "pdf-extractor"),
	}, nil
}

// Extract rasterizes, normalizes and embeds every page of a PDF.
func (e *PDFExtractor) Extract(ctx context.Context, path, owner string) (*core.File, error) {
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

	pages, err := e.rasterize(ctx, path)
	if err != nil {
		return nil, err
	}

	return e.buildFile(ctx, metadata, pages)
}

// rasterize renders each page of the PDF at path into a normalized base64
// JPEG payload, in page order.
func (e *PDFExtractor) rasterize(ctx context.Context, path string) ([]string, error) {
	workDir, err := os.MkdirTemp("", "multirag-pdf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(workDir)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFileNotValid, err)
	}

	out, err := e.runner.Run(ctx, workDir, "pdftoppm",
		"-jpeg", "-r", rasterDPI, abs, filepath.Join(workDir, "page"))
	if err != nil {
		e.logger.Error("pdftoppm failed", "path", path, "output", string(out), "err", err)
		return nil, fmt.Errorf("%w: rasterizing %s: %v", core.ErrFileNotValid, path, err)
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, err
	}

	var pageFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".jpg") {
			pageFiles = append(pageFiles, entry.Name())
		}
	}
	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("%w: %s produced no pages", core.ErrFileNotValid, path)
	}
	// pdftoppm zero-pads page numbers, so lexicographic order is page order.
	sort.Strings(pageFiles)

	pages := make([]string, 0, len(pageFiles))
	for i, name := range pageFiles {
		pageRaw, err := os.ReadFile(filepath.Join(workDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: reading page %d: %v", core.ErrFileNotValid, i+1, err)
		}

		encoded, err := processImage(pageRaw)
		if err != nil {
			if errors.Is(err, core.ErrImageTooLarge) {
				e.logger.Error("stopping pdf extraction, page too big to process", "page", i+1, "path", path)
			}
			return nil, err
		}
		pages = append(pages, encoded)
	}
	return pages, nil
}

// buildFile assembles one chunk per page and embeds them in order.
func (e *PDFExtractor) buildFile(ctx context.Context, metadata core.Metadata, pages []string) (*core.File, error) {
	ids := core.ChunkIDs(metadata.FileID, len(pages))
	chunks, err := core.BuildChunks(ids, pages, metadata)
	if err != nil {
		return nil, err
	}

	file := &core.File{
		Metadata: metadata,
		Pages:    pages,
		Chunks:   chunks,
	}

	if err := embedImageChunks(ctx, e.embedder, file); err != nil {
		return nil, err
	}
	return file, nil
}
