package pipeline

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/veldtlabs/multirag/core"
)

// BatchResult is the per-file outcome of a batch ingestion.
type BatchResult struct {
	Path string
	Err  error
}

// IngestAll ingests every path on the worker pool. Each file succeeds or
// fails on its own; a failure never stops the batch. Results come back in no
// particular order.
func (p *Piper) IngestAll(ctx context.Context, paths []string, owner string) []BatchResult {
	results := make([]BatchResult, 0, len(paths))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, path := range paths {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			err := p.Ingest(ctx, path, owner)

			mu.Lock()
			results = append(results, BatchResult{Path: path, Err: err})
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			results = append(results, BatchResult{Path: path, Err: submitErr})
			mu.Unlock()
		}
	}

	wg.Wait()
	return results
}

// IngestDir walks dir and ingests every file with a recognized extension.
// Unrecognized files are skipped silently; subdirectories are descended into.
func (p *Piper) IngestDir(ctx context.Context, dir, owner string) ([]BatchResult, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, _, err := core.FileTypeFromPath(path); err != nil {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.IngestAll(ctx, paths, owner), nil
}
