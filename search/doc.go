// Package search retrieves an owner's most relevant chunks for a query.
//
// A single query embedding is matched against both the text and image
// collections of the owner's namespace; hits are ranked together and their
// payloads resolved from the blob store.
package search
