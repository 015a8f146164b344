package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/multirag/ai/mock"
	"github.com/veldtlabs/multirag/core"
)

// writePages drops n rendered page files into dir the way pdftoppm would.
func writePages(t *testing.T, dir string, pages ...[]byte) {
	t.Helper()
	for i, page := range pages {
		name := fmt.Sprintf("page-%02d.jpg", i+1)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), page, 0o644))
	}
}

func TestPDFExtractor_OneChunkPerPage(t *testing.T) {
	path := writeTestFile(t, "report.pdf", "%PDF-1.4 fake")

	runner := &mockRunner{
		RunFunc: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
			writePages(t, dir, testJPEG(t, 600, 800), testJPEG(t, 600, 800), testJPEG(t, 600, 800))
			return nil, nil
		},
	}
	embedder := mock.NewEmbedder()

	extractor, err := NewPDFExtractor(embedder, runner)
	require.NoError(t, err)

	file, err := extractor.Extract(context.Background(), path, "dana")
	require.NoError(t, err)

	assert.Equal(t, "dana/pdf/report", file.Metadata.FileID)
	require.Len(t, file.Chunks, 3)
	assert.Equal(t, "dana/pdf/report/chunk1", file.Chunks[0].ID)
	assert.Equal(t, "dana/pdf/report/chunk2", file.Chunks[1].ID)
	assert.Equal(t, "dana/pdf/report/chunk3", file.Chunks[2].ID)
	for _, chunk := range file.Chunks {
		assert.Len(t, chunk.Embedding, core.EmbeddingDim)
	}
	assert.Equal(t, 3, embedder.ImageCalls())

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "pdftoppm", calls[0][0])
	assert.Contains(t, calls[0], "-jpeg")
}

func TestPDFExtractor_RendererFailure(t *testing.T) {
	path := writeTestFile(t, "broken.pdf", "junk")

	runner := &mockRunner{
		RunFunc: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
			return []byte("Syntax Error: couldn't read xref table"), errors.New("exit status 1")
		},
	}

	extractor, err := NewPDFExtractor(mock.NewEmbedder(), runner)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), path, "dana")
	assert.ErrorIs(t, err, core.ErrFileNotValid)
}

func TestPDFExtractor_NoPagesProduced(t *testing.T) {
	path := writeTestFile(t, "empty.pdf", "%PDF-1.4")

	extractor, err := NewPDFExtractor(mock.NewEmbedder(), &mockRunner{})
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), path, "dana")
	assert.ErrorIs(t, err, core.ErrFileNotValid)
}

func TestPDFExtractor_OversizedPageAbortsFile(t *testing.T) {
	path := writeTestFile(t, "scan.pdf", "%PDF-1.4 fake")

	runner := &mockRunner{
		RunFunc: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
			// page two claims bomb-sized dimensions
			require.NoError(t, os.WriteFile(filepath.Join(dir, "page-01.jpg"), testJPEG(t, 600, 800), 0o644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "page-02.jpg"), bombPNG(t, 60000, 60000), 0o644))
			return nil, nil
		},
	}
	embedder := mock.NewEmbedder()

	extractor, err := NewPDFExtractor(embedder, runner)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), path, "dana")
	assert.ErrorIs(t, err, core.ErrImageTooLarge)
	assert.Equal(t, 0, embedder.ImageCalls())
}
