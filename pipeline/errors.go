package pipeline

import "errors"

var (
	// ErrEmbedderRequired indicates that no embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrVectorStoreRequired indicates that no vector store was provided.
	ErrVectorStoreRequired = errors.New("vector store is required")

	// ErrBlobStoreRequired indicates that no blob store was provided.
	ErrBlobStoreRequired = errors.New("blob store is required")

	// ErrCatalogRequired indicates that no catalog was provided.
	ErrCatalogRequired = errors.New("catalog is required")

	// ErrUploaderRequired indicates that no uploader was provided.
	ErrUploaderRequired = errors.New("uploader is required")

	// ErrFactoryRequired indicates that no factory was provided.
	ErrFactoryRequired = errors.New("factory is required")
)
