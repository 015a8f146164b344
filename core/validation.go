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

import (
	"fmt"
	"os"
)

// ValidatePath checks that path exists and refers to a regular file.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not lead to a file on the system", ErrFileNotValid, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrFileNotValid, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a file", ErrFileNotValid, path)
	}
	return nil
}

// ValidateChunks validates the chunk set of a file before any remote call.
//
// Validation rules:
//   - the chunk list must not be empty
//   - every chunk id must be non-empty
//   - when requireEmbeddings is set, every chunk must carry an embedding of
//     exactly EmbeddingDim values
func ValidateChunks(file *File, requireEmbeddings bool) error {
	if file == nil || len(file.Chunks) == 0 {
		return fmt.Errorf("%w: no chunks to upload", ErrChunkMismatch)
	}

	for i, chunk := range file.Chunks {
		if chunk.ID == "" {
			return fmt.Errorf("%w: chunk %d of %s", ErrEmptyChunkID, i+1, file.Metadata.FileID)
		}
		if !requireEmbeddings {
			continue
		}
		if chunk.Embedding == nil {
			return fmt.Errorf("%w: chunk %s has no embedding", ErrChunkMismatch, chunk.ID)
		}
		if len(chunk.Embedding) != EmbeddingDim {
			return fmt.Errorf("%w: expected %d dimensions for %s, got %d",
				ErrBadDimension, EmbeddingDim, chunk.ID, len(chunk.Embedding))
		}
	}

	return nil
}
