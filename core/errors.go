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


package core

import "errors"

// Domain validation errors
var (
	// ErrFileNotValid indicates a bad path, an unreadable file, or corrupt content.
	ErrFileNotValid = errors.New("file is not valid")

	// ErrUnsupportedFileType indicates an extension outside the recognized set.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrImageTooLarge indicates an image rejected by the decompression-bomb guard.
	ErrImageTooLarge = errors.New("image too large")

	// ErrChunkMismatch indicates an internal invariant violation: the number of
	// chunk ids, contents, or embeddings disagree.
	ErrChunkMismatch = errors.New("chunk generation mismatch")

	// ErrEmptyChunkID indicates a chunk with no id reached an uploader.
	ErrEmptyChunkID = errors.New("chunk id cannot be empty")

	// ErrBadDimension indicates an embedding whose length differs from EmbeddingDim.
	ErrBadDimension = errors.New("embedding dimension mismatch")
)
