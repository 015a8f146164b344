package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/storage"
)

// collections are the per-owner sub-namespaces queried on every search.
// Text and image vectors live in the same embedding space, so one query
// embedding serves both.
var collections = []string{"text", "image"}

// Result is a single retrieval hit. Content is the stored chunk payload:
// UTF-8 text for text hits, a base64 JPEG for image hits.
type Result struct {
	ID         string
	Score      float32
	Collection string
	Content    string
	Metadata   map[string]string
}

// Searcher retrieves an owner's most relevant chunks for a query.
type Searcher struct {
	embedder ai.Embedder
	vectors  storage.VectorStore
	blobs    storage.BlobStore
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(embedder ai.Embedder, vectors storage.VectorStore, blobs storage.BlobStore, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if blobs == nil {
		return nil, ErrBlobStoreRequired
	}

	s := &Searcher{
		embedder: embedder,
		vectors:  vectors,
		blobs:    blobs,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FindSimilar retrieves up to maxHits chunks of owner's corpus ranked by
// similarity to query. Both the text and image collections are searched with
// the same query embedding and the merged hits are ranked together.
func (s *Searcher) FindSimilar(ctx context.Context, owner, query string, maxHits int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if maxHits < 1 {
		maxHits = 1
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	var results []Result
	for _, collection := range collections {
		namespace := owner + "/" + collection
		matches, err := s.vectors.Query(ctx, embedding, namespace, maxHits)
		if err != nil {
			s.logger.Error("error querying namespace", "namespace", namespace, "err", err)
			return nil, err
		}
		for _, match := range matches {
			results = append(results, Result{
				ID:         match.ID,
				Score:      match.Score,
				Collection: collection,
				Metadata:   match.Metadata,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}

	s.resolveContent(ctx, results)
	return results, nil
}

// resolveContent loads each hit's payload from the blob store. A hit whose
// blob is missing keeps an empty Content; the id and metadata still identify
// the source file.
func (s *Searcher) resolveContent(ctx context.Context, results []Result) {
	for i := range results {
		content, err := s.blobs.Get(ctx, results[i].ID)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("error resolving hit content", "id", results[i].ID, "err", err)
			}
			continue
		}
		results[i].Content = string(content)
	}
}
