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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/storage"
)

// Piper orchestrates a single file ingestion: resolve, extract, upload to
// both stores concurrently, and reconcile the outcome. The two uploads share
// no mutable state and are never cancelled on a sibling failure; each runs to
// its own terminal state before the outcome is evaluated.
type Piper struct {
	factory *Factory
	catalog storage.Catalog
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures a Piper.
type Option func(*Piper) error

// WithPoolSize sets the worker pool size for batch ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Piper) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Piper) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPiper creates an ingestion orchestrator.
func NewPiper(factory *Factory, catalog storage.Catalog, opts ...Option) (*Piper, error) {
	if factory == nil {
		return nil, ErrFactoryRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Piper{
		factory: factory,
		catalog: catalog,
		pool:    pool,
		logger:  slog.Default().With("component", "piper"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			pool.Release()
			return nil, err
		}
	}
	return p, nil
}

// Close releases the batch worker pool.
func (p *Piper) Close() {
	p.pool.Release()
}

// Ingest processes one file end to end: extraction, concurrent dual-store
// upload, compensation on a one-sided failure, and a best-effort catalog
// record on success.
func (p *Piper) Ingest(ctx context.Context, path, owner string) error {
	_, ft, err := core.FileTypeFromPath(path)
	if err != nil {
		return err
	}

	extractor, uploader, err := p.factory.Resolve(ft)
	if err != nil {
		return err
	}

	file, err := extractor.Extract(ctx, path, owner)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}

	vecErr, blobErr := p.upload(ctx, uploader, file)
	if err := p.settle(ctx, uploader, file, vecErr, blobErr); err != nil {
		return err
	}

	if err := p.catalog.Put(ctx, file.Metadata); err != nil {
		// catalog is advisory: both stores hold the data, so the record
		// loss is logged and the ingestion still counts as succeeded
		p.logger.Error("catalog write failed", "fileId", file.Metadata.FileID, "err", err)
	}

	p.logger.Info("file ingested", "fileId", file.Metadata.FileID, "chunks", len(file.Chunks))
	return nil
}

// upload runs both store writes concurrently and waits for both terminal
// states.
func (p *Piper) upload(ctx context.Context, uploader Uploader, file *core.File) (vecErr, blobErr error) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		vecErr = uploader.UploadVectors(ctx, file)
	}()
	go func() {
		defer wg.Done()
		blobErr = uploader.UploadBlobs(ctx, file)
	}()

	wg.Wait()
	return vecErr, blobErr
}

// settle evaluates the joined outcome of the two uploads.
//
// Both succeeded: nothing to do. Both failed: surface both, no compensation —
// neither store holds partial state worth the risk of a blind delete. Exactly
// one failed with a store-attributed error: delete the sibling's write so the
// stores stay consistent; the caller always sees the original upsert error,
// with the deletion failure joined in when compensation itself fails. A
// failure without store attribution is never compensated.
func (p *Piper) settle(ctx context.Context, uploader Uploader, file *core.File, vecErr, blobErr error) error {
	switch {
	case vecErr == nil && blobErr == nil:
		return nil

	case vecErr != nil && blobErr != nil:
		p.logger.Error("both uploads failed", "fileId", file.Metadata.FileID,
			"vectorErr", vecErr, "blobErr", blobErr)
		return &storage.AggregateError{Errs: []error{vecErr, blobErr}}

	case vecErr != nil:
		return p.compensate(ctx, file, vecErr, func() error {
			return uploader.RollbackBlobs(ctx, file)
		})

	default:
		return p.compensate(ctx, file, blobErr, func() error {
			return uploader.RollbackVectors(ctx, file)
		})
	}
}

// compensate rolls back the succeeded sibling of a failed upload, keyed by
// file id.
func (p *Piper) compensate(ctx context.Context, file *core.File, uploadErr error, rollback func() error) error {
	var upsertErr *storage.UpsertionError
	if !errors.As(uploadErr, &upsertErr) {
		// unattributed failure: refuse to guess which store to clean
		p.logger.Error("upload failed without store attribution, skipping compensation",
			"fileId", file.Metadata.FileID, "err", uploadErr)
		return &storage.AggregateError{Errs: []error{uploadErr}}
	}

	p.logger.Warn("one-sided upload failure, compensating sibling store",
		"fileId", file.Metadata.FileID, "failedTarget", upsertErr.Target.String(), "err", uploadErr)

	if err := rollback(); err != nil {
		p.logger.Error("compensation failed, orphaned data remains",
			"fileId", file.Metadata.FileID, "err", err)
		return errors.Join(uploadErr, err)
	}
	return uploadErr
}
