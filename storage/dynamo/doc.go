// Package dynamo implements the file catalog on a DynamoDB table keyed
// userId (HASH) + fileId (RANGE).
package dynamo
