// Package badger implements the file catalog on a local BadgerDB instance.
//
// Records are keyed "filrec:{owner}:{fileID}" and serialized with MUS, so
// listing an owner's files is a single prefix iteration.
package badger
