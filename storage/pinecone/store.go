package pinecone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/veldtlabs/multirag/storage"
)

// indexConn is the slice of a pinecone index connection the store needs.
type indexConn interface {
	UpsertVectors(ctx context.Context, in []*pinecone.Vector) (uint32, error)
	DeleteVectorsById(ctx context.Context, ids []string) error
	QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
}

// connFactory opens a connection scoped to a namespace.
type connFactory func(namespace string) (indexConn, error)

// Config holds configuration for the vector store client.
type Config struct {
	APIKey string
	// Host is the index host URL, e.g. "my-index-abcd123.svc.aped-4627-b74a.pinecone.io".
	Host string
}

// Store implements storage.VectorStore on a Pinecone serverless index.
// Namespaces are "{owner}/{collection}"; one index connection is held per
// namespace.
type Store struct {
	newConn connFactory
	logger  *slog.Logger

	mu    sync.Mutex
	conns map[string]indexConn
}

var _ storage.VectorStore = (*Store)(nil)

// NewStore creates a vector store client for the configured index.
func NewStore(cfg Config) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key required")
	}
	if cfg.Host == "" {
		return nil, errors.New("index host required")
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("pinecone client: %w", err)
	}

	factory := func(namespace string) (indexConn, error) {
		return client.Index(pinecone.NewIndexConnParams{
			Host:      cfg.Host,
			Namespace: namespace,
		})
	}

	return newStore(factory), nil
}

func newStore(factory connFactory) *Store {
	return &Store{
		newConn: factory,
		logger:  slog.Default().With("component", "pinecone-store"),
		conns:   make(map[string]indexConn),
	}
}

func (s *Store) conn(namespace string) (indexConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conn, ok := s.conns[namespace]; ok {
		return conn, nil
	}
	conn, err := s.newConn(namespace)
	if err != nil {
		return nil, fmt.Errorf("index connection for namespace %q: %w", namespace, err)
	}
	s.conns[namespace] = conn
	return conn, nil
}

// Upsert writes a single vector under id. Re-upserting overwrites.
func (s *Store) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string, namespace string) error {
	conn, err := s.conn(namespace)
	if err != nil {
		return err
	}

	md, err := toMetadata(metadata)
	if err != nil {
		return err
	}

	s.logger.Debug("upserting vector", "id", id, "namespace", namespace)
	_, err = conn.UpsertVectors(ctx, []*pinecone.Vector{{
		Id:       id,
		Values:   &vector,
		Metadata: md,
	}})
	if err != nil {
		return fmt.Errorf("upsert %q: %w", id, err)
	}
	return nil
}

// Delete removes the entry with the given id from the namespace.
func (s *Store) Delete(ctx context.Context, id string, namespace string) error {
	conn, err := s.conn(namespace)
	if err != nil {
		return err
	}

	s.logger.Debug("deleting vector", "id", id, "namespace", namespace)
	if err := conn.DeleteVectorsById(ctx, []string{id}); err != nil {
		return fmt.Errorf("delete %q: %w", id, err)
	}
	return nil
}

// Query returns the topK closest entries in the namespace.
func (s *Store) Query(ctx context.Context, vector []float32, namespace string, topK int) ([]storage.QueryMatch, error) {
	conn, err := s.conn(namespace)
	if err != nil {
		return nil, err
	}

	res, err := conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query namespace %q: %w", namespace, err)
	}

	matches := make([]storage.QueryMatch, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m.Vector == nil {
			continue
		}
		matches = append(matches, storage.QueryMatch{
			ID:       m.Vector.Id,
			Score:    m.Score,
			Metadata: fromMetadata(m.Vector.Metadata),
		})
	}
	return matches, nil
}

func toMetadata(metadata map[string]string) (*pinecone.Metadata, error) {
	if metadata == nil {
		return nil, nil
	}
	fields := make(map[string]any, len(metadata))
	for k, v := range metadata {
		fields[k] = v
	}
	md, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("vector metadata: %w", err)
	}
	return md, nil
}

func fromMetadata(md *pinecone.Metadata) map[string]string {
	if md == nil {
		return nil
	}
	out := make(map[string]string, len(md.Fields))
	for k, v := range md.Fields {
		out[k] = v.GetStringValue()
	}
	return out
}
