// Package pinecone implements the vector store on a Pinecone serverless
// index with overwrite-by-id upsert semantics.
package pinecone
