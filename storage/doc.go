// Package storage defines the store ports the ingestion pipeline writes to:
// the vector index, the blob store, and the file catalog.
//
// The vector index and the blob store form the transactional pair coordinated
// by the orchestrator; every failure they surface is tagged with a Target so
// the compensation direction is never guessed. The catalog sits outside the
// pair: its writes are fire-and-forget.
//
// Implementations live in sub-packages:
//
//   - storage/pinecone: VectorStore on a Pinecone serverless index
//   - storage/s3: BlobStore on an S3 bucket
//   - storage/dynamo: Catalog on a DynamoDB table
//   - storage/badger: Catalog on a local BadgerDB, for single-node setups
package storage
