package search

import "errors"

var (
	// ErrEmbedderRequired indicates that no embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrVectorStoreRequired indicates that no vector store was provided.
	ErrVectorStoreRequired = errors.New("vector store is required")

	// ErrBlobStoreRequired indicates that no blob store was provided.
	ErrBlobStoreRequired = errors.New("blob store is required")

	// ErrEmptyQuery indicates an empty search query.
	ErrEmptyQuery = errors.New("query is empty")
)
