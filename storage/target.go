package storage

// Target identifies which store an upsert, delete, or error applies to.
type Target int

const (
	// TargetVectorIndex is the remote vector index.
	TargetVectorIndex Target = iota + 1
	// TargetBlobStore is the remote object store.
	TargetBlobStore
	// TargetCatalog is the file catalog. It is outside the transactional
	// pair; errors against it are logged, never compensated.
	TargetCatalog
)

func (t Target) String() string {
	switch t {
	case TargetVectorIndex:
		return "vector-index"
	case TargetBlobStore:
		return "blob-store"
	case TargetCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}
