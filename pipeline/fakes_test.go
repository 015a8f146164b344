package pipeline

import (
	"context"
	"io"
	"sync"

	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/storage"
)

// fakeVectorStore is an in-memory VectorStore recording every call.
type fakeVectorStore struct {
	UpsertFunc func(ctx context.Context, id string, vector []float32, metadata map[string]string, namespace string) error
	DeleteFunc func(ctx context.Context, id, namespace string) error

	mu      sync.Mutex
	entries map[string]map[string][]float32 // namespace -> id -> vector
	upserts int
	deletes []string
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{entries: make(map[string]map[string][]float32)}
}

func (f *fakeVectorStore) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string, namespace string) error {
	f.mu.Lock()
	f.upserts++
	f.mu.Unlock()

	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, id, vector, metadata, namespace)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	ns, ok := f.entries[namespace]
	if !ok {
		ns = make(map[string][]float32)
		f.entries[namespace] = ns
	}
	ns[id] = vector
	return nil
}

func (f *fakeVectorStore) Delete(ctx context.Context, id, namespace string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, namespace+"::"+id)
	f.mu.Unlock()

	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id, namespace)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ns, ok := f.entries[namespace]; ok {
		delete(ns, id)
	}
	return nil
}

func (f *fakeVectorStore) Query(ctx context.Context, vector []float32, namespace string, topK int) ([]storage.QueryMatch, error) {
	return nil, nil
}

func (f *fakeVectorStore) Upserts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

func (f *fakeVectorStore) Deletes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes
}

func (f *fakeVectorStore) Count(namespace string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries[namespace])
}

// fakeBlobStore is an in-memory BlobStore recording every call.
type fakeBlobStore struct {
	ExistsFunc func(ctx context.Context, key string) (bool, error)
	PutFunc    func(ctx context.Context, key string, body io.Reader) error
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	deletes []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, body io.Reader) error {
	f.mu.Lock()
	f.puts++
	f.mu.Unlock()

	if f.PutFunc != nil {
		return f.PutFunc(ctx, key, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[key], nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, key)
	f.mu.Unlock()

	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) Puts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

func (f *fakeBlobStore) Deletes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes
}

// fakeCatalog is an in-memory Catalog recording every call.
type fakeCatalog struct {
	PutFunc func(ctx context.Context, metadata core.Metadata) error

	mu      sync.Mutex
	records []core.Metadata
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{}
}

func (f *fakeCatalog) Put(ctx context.Context, metadata core.Metadata) error {
	if f.PutFunc != nil {
		return f.PutFunc(ctx, metadata)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, metadata)
	return nil
}

func (f *fakeCatalog) List(ctx context.Context, owner string) ([]core.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Metadata
	for _, m := range f.records {
		if m.Owner == owner {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Delete(ctx context.Context, owner, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.records {
		if m.Owner == owner && m.FileID == fileID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCatalog) Close() error { return nil }

func (f *fakeCatalog) Records() []core.Metadata {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records
}
