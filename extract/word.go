// Copyright 2026 Veldt Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/core"
)

// WordExtractor converts word-processor documents to PDF and then follows the
// page pipeline: one normalized JPEG chunk per page.
type WordExtractor struct {
	runner CommandRunner
	pdf    *PDFExtractor
	logger *slog.Logger
}

var _ Extractor = (*WordExtractor)(nil)

// NewWordExtractor creates a word-document extractor converting through runner.
func NewWordExtractor(embedder ai.Embedder, runner CommandRunner) (*WordExtractor, error) {
	if embedder == nil {
		return nil, errors.New("embedder required")
	}
	if runner == nil {
		runner = NewCommandRunner()
	}
	pdf, err := NewPDFExtractor(embedder, runner)
	if err != nil {
		return nil, err
	}
	return &WordExtractor{
		runner: runner,
		pdf:    pdf,
		logger: slog.Default().With("component", "word-extractor"),
	}, nil
}

// Extract converts the document to PDF, rasterizes and embeds its pages.
// Metadata (file id, digest) is derived from the original document, not the
// intermediate PDF.
func (e *WordExtractor) Extract(ctx context.Context, path, owner string) (*core.File, error) {
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

	workDir, err := os.MkdirTemp("", "multirag-word-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(workDir)

	converted, err := e.convert(ctx, workDir, path)
	if err != nil {
		return nil, err
	}

	pages, err := e.pdf.rasterize(ctx, converted)
	if err != nil {
		return nil, err
	}

	return e.pdf.buildFile(ctx, metadata, pages)
}

// convert renders the document at path into a PDF inside workDir and returns
// the PDF path.
func (e *WordExtractor) convert(ctx context.Context, workDir, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrFileNotValid, err)
	}

	outPath := filepath.Join(workDir, "converted.pdf")
	out, err := e.runner.Run(ctx, workDir, "pandoc",
		abs, "-o", outPath, "--pdf-engine=tectonic")
	if err != nil {
		e.logger.Error("pandoc failed", "path", path, "output", string(out), "err", err)
		return "", fmt.Errorf("%w: converting %s: %v", core.ErrFileNotValid, path, err)
	}

	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("%w: conversion of %s produced no output", core.ErrFileNotValid, path)
	}
	return outPath, nil
}
