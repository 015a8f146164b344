// Package pipeline orchestrates file ingestion into the retrieval corpus.
//
// The Factory maps recognized file types to their extractor and uploader.
// The Piper drives one file end to end: extract and embed, then write
// vectors and blob content concurrently to the two stores. On a one-sided
// store failure the succeeded sibling's write is deleted so the stores never
// diverge; when both writes fail nothing is compensated. The catalog record
// is advisory and written best-effort after both stores have accepted.
//
// Batch ingestion fans individual files out over a worker pool; each file
// succeeds or fails independently.
package pipeline
