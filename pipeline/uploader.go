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
	"log/slog"
	"strings"

	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/storage"
)

// Uploader writes an extracted file into the two remote stores, and undoes a
// one-sided write during compensation. Every failure it surfaces is a
// *storage.UpsertionError so the orchestrator can attribute it to a store;
// local validation failures count as upsertion failures of the store they
// would have hit.
type Uploader interface {
	// UploadVectors validates and upserts every chunk embedding into the
	// vector index under the owner's collection namespace.
	UploadVectors(ctx context.Context, file *core.File) error

	// UploadBlobs validates and writes every chunk payload to the blob
	// store, skipping keys that already exist.
	UploadBlobs(ctx context.Context, file *core.File) error

	// RollbackVectors deletes the file's entry from the vector index,
	// keyed by file id.
	RollbackVectors(ctx context.Context, file *core.File) error

	// RollbackBlobs deletes the file's object from the blob store, keyed
	// by file id.
	RollbackBlobs(ctx context.Context, file *core.File) error
}

// StoreUploader is the production Uploader over a VectorStore and BlobStore.
type StoreUploader struct {
	vectors storage.VectorStore
	blobs   storage.BlobStore
	logger  *slog.Logger
}

var _ Uploader = (*StoreUploader)(nil)

// NewStoreUploader creates an uploader over the given store pair.
func NewStoreUploader(vectors storage.VectorStore, blobs storage.BlobStore) (*StoreUploader, error) {
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if blobs == nil {
		return nil, ErrBlobStoreRequired
	}
	return &StoreUploader{
		vectors: vectors,
		blobs:   blobs,
		logger:  slog.Default().With("component", "uploader"),
	}, nil
}

// UploadVectors upserts one vector per chunk. Validation runs before any
// remote call: a file that fails it never touches the index.
func (u *StoreUploader) UploadVectors(ctx context.Context, file *core.File) error {
	if err := core.ValidateChunks(file, true); err != nil {
		return storage.NewUpsertionError(storage.TargetVectorIndex, err)
	}

	namespace := core.CollectionNamespace(file.Metadata.Owner, core.FileType(file.Metadata.FileType))
	for _, chunk := range file.Chunks {
		if err := u.vectors.Upsert(ctx, chunk.ID, chunk.Embedding, chunk.Metadata.Map(), namespace); err != nil {
			return storage.NewUpsertionError(storage.TargetVectorIndex, err)
		}
	}

	u.logger.Debug("vectors upserted", "fileId", file.Metadata.FileID,
		"chunks", len(file.Chunks), "namespace", namespace)
	return nil
}

// UploadBlobs writes one object per chunk, create-if-absent: keys that
// already exist are left untouched, which makes re-ingestion idempotent.
func (u *StoreUploader) UploadBlobs(ctx context.Context, file *core.File) error {
	if err := core.ValidateChunks(file, false); err != nil {
		return storage.NewUpsertionError(storage.TargetBlobStore, err)
	}

	for _, chunk := range file.Chunks {
		exists, err := u.blobs.Exists(ctx, chunk.ID)
		if err != nil {
			return storage.NewUpsertionError(storage.TargetBlobStore, err)
		}
		if exists {
			u.logger.Debug("blob already present, skipping", "key", chunk.ID)
			continue
		}
		if err := u.blobs.Put(ctx, chunk.ID, strings.NewReader(chunk.Content)); err != nil {
			return storage.NewUpsertionError(storage.TargetBlobStore, err)
		}
	}
	return nil
}

// RollbackVectors removes the entry keyed by the bare file id from the
// owner's namespace.
func (u *StoreUploader) RollbackVectors(ctx context.Context, file *core.File) error {
	namespace := core.CollectionNamespace(file.Metadata.Owner, core.FileType(file.Metadata.FileType))
	if err := u.vectors.Delete(ctx, file.Metadata.FileID, namespace); err != nil {
		return &storage.DeletionError{
			Target: storage.TargetVectorIndex,
			Key:    file.Metadata.FileID,
			Err:    err,
		}
	}
	return nil
}

// RollbackBlobs removes the object keyed by the bare file id.
func (u *StoreUploader) RollbackBlobs(ctx context.Context, file *core.File) error {
	if err := u.blobs.Delete(ctx, file.Metadata.FileID); err != nil {
		return &storage.DeletionError{
			Target: storage.TargetBlobStore,
			Key:    file.Metadata.FileID,
			Err:    err,
		}
	}
	return nil
}
