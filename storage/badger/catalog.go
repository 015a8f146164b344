package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/storage"
)

// Catalog implements storage.Catalog on a local BadgerDB.
// It is the single-node alternative to the DynamoDB catalog.
type Catalog struct {
	backend *Backend
}

var _ storage.Catalog = (*Catalog)(nil)

// NewCatalog creates a Catalog on the given backend.
func NewCatalog(backend *Backend) (*Catalog, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &Catalog{backend: backend}, nil
}

// Put records the file described by metadata. Re-putting the same file id
// overwrites the record.
func (c *Catalog) Put(ctx context.Context, metadata core.Metadata) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFileRecordKey(metadata.Owner, metadata.FileID)
		if err := tx.Set(key, storage.MarshalMetadata(metadata)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// List returns the metadata of every file recorded for owner.
func (c *Catalog) List(ctx context.Context, owner string) ([]core.Metadata, error) {
	var records []core.Metadata

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeOwnerPrefix(owner)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				m, err := storage.UnmarshalMetadata(val)
				if err != nil {
					return err
				}
				records = append(records, m)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes the record for the given owner and file id.
func (c *Catalog) Delete(ctx context.Context, owner, fileID string) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFileRecordKey(owner, fileID)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (c *Catalog) Close() error {
	return c.backend.Close()
}
