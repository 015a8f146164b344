// Package core defines the content model shared across the ingestion
// pipeline: file metadata, chunks, the file-type taxonomy, and the domain
// validation rules that guard uploads.
//
// A File is built fresh per ingestion call, is read-only once its chunks are
// embedded, and is discarded when the pipeline returns. Chunk ids follow the
// scheme "{owner}/{fileType}/{fileName}/chunk{n}" for multi-chunk files;
// single-image files use the bare file id.
package core
