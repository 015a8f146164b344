// Package s3 implements the blob store on an S3 bucket.
//
// Objects are keyed by chunk id under the file id prefix. The client is
// deliberately thin: existence checks, puts, gets and deletes — the
// create-if-absent policy lives in the uploaders, not here.
package s3
