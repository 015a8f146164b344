package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/multirag/ai/mock"
	"github.com/veldtlabs/multirag/core"
)

func TestWordExtractor_ConvertsThenRasterizes(t *testing.T) {
	path := writeTestFile(t, "thesis.docx", "PK fake docx bytes")

	runner := &mockRunner{
		RunFunc: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
			switch name {
			case "pandoc":
				return nil, os.WriteFile(filepath.Join(dir, "converted.pdf"), []byte("%PDF-1.4"), 0o644)
			case "pdftoppm":
				writePages(t, dir, testJPEG(t, 600, 800), testJPEG(t, 600, 800))
				return nil, nil
			}
			return nil, errors.New("unexpected command: " + name)
		},
	}
	embedder := mock.NewEmbedder()

	extractor, err := NewWordExtractor(embedder, runner)
	require.NoError(t, err)

	file, err := extractor.Extract(context.Background(), path, "erin")
	require.NoError(t, err)

	// identity comes from the original document, not the intermediate PDF
	assert.Equal(t, "erin/docx/thesis", file.Metadata.FileID)
	assert.Equal(t, core.Digest([]byte("PK fake docx bytes")), file.Metadata.Digest)

	require.Len(t, file.Chunks, 2)
	assert.Equal(t, "erin/docx/thesis/chunk1", file.Chunks[0].ID)
	assert.Equal(t, "erin/docx/thesis/chunk2", file.Chunks[1].ID)
	assert.Equal(t, 2, embedder.ImageCalls())

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "pandoc", calls[0][0])
	assert.Contains(t, calls[0], "--pdf-engine=tectonic")
	assert.Equal(t, "pdftoppm", calls[1][0])
}

func TestWordExtractor_ConversionFailure(t *testing.T) {
	path := writeTestFile(t, "corrupt.docx", "not a docx")

	runner := &mockRunner{
		RunFunc: func(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
			return []byte("pandoc: could not parse archive"), errors.New("exit status 1")
		},
	}

	extractor, err := NewWordExtractor(mock.NewEmbedder(), runner)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), path, "erin")
	assert.ErrorIs(t, err, core.ErrFileNotValid)
}

func TestWordExtractor_ConversionProducesNothing(t *testing.T) {
	path := writeTestFile(t, "hollow.docx", "bytes")

	extractor, err := NewWordExtractor(mock.NewEmbedder(), &mockRunner{})
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), path, "erin")
	assert.ErrorIs(t, err, core.ErrFileNotValid)
}
