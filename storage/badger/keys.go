package badger

import "fmt"

// Key prefixes for catalog records
const (
	fileRecordPrefix = "filrec"
)

// makeFileRecordKey generates a key for a catalog record.
// Format: prefix:owner:fileID. The fileID itself starts with the owner, so
// the owner segment is technically redundant, but it keeps per-owner scans a
// plain prefix iteration.
func makeFileRecordKey(owner, fileID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", fileRecordPrefix, owner, fileID))
}

// makeOwnerPrefix generates the iteration prefix for all records of an owner.
func makeOwnerPrefix(owner string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", fileRecordPrefix, owner))
}
