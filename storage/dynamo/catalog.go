package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/veldtlabs/multirag/core"
	"github.com/veldtlabs/multirag/storage"
)

// API is the slice of the DynamoDB client the catalog needs.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Config holds configuration for the catalog client.
type Config struct {
	Region   string
	Table    string
	Endpoint string // non-empty for DynamoDB Local
}

// fileItem is the wire shape of a catalog record.
// The table is keyed userId (HASH) + fileId (RANGE).
type fileItem struct {
	UserID    string `dynamodbav:"userId"`
	FileID    string `dynamodbav:"fileId"`
	FileName  string `dynamodbav:"fileName"`
	FileType  string `dynamodbav:"fileType"`
	Digest    string `dynamodbav:"digest"`
	CreatedAt string `dynamodbav:"createdAt"`
}

// Catalog implements storage.Catalog on a DynamoDB table.
type Catalog struct {
	api    API
	table  string
	logger *slog.Logger
}

var _ storage.Catalog = (*Catalog)(nil)

// NewCatalog creates a catalog client from the default AWS credential chain.
func NewCatalog(ctx context.Context, cfg Config) (*Catalog, error) {
	if cfg.Table == "" {
		return nil, errors.New("table name required")
	}

	var options []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		options = append(options, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewCatalogWithAPI(client, cfg.Table), nil
}

// NewCatalogWithAPI creates a catalog over an existing API, typically a test
// double.
func NewCatalogWithAPI(api API, table string) *Catalog {
	return &Catalog{
		api:    api,
		table:  table,
		logger: slog.Default().With("component", "dynamo-catalog"),
	}
}

// Put records the file described by metadata. Re-putting the same file id
// overwrites the item.
func (c *Catalog) Put(ctx context.Context, metadata core.Metadata) error {
	item, err := attributevalue.MarshalMap(fileItem{
		UserID:    metadata.Owner,
		FileID:    metadata.FileID,
		FileName:  metadata.FileName,
		FileType:  metadata.FileType,
		Digest:    metadata.Digest,
		CreatedAt: metadata.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item %q: %w", metadata.FileID, err)
	}
	return nil
}

// List returns the metadata of every file recorded for owner.
func (c *Catalog) List(ctx context.Context, owner string) ([]core.Metadata, error) {
	out, err := c.api.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("userId = :owner"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":owner": &ddbtypes.AttributeValueMemberS{Value: owner},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query owner %q: %w", owner, err)
	}

	records := make([]core.Metadata, 0, len(out.Items))
	for _, raw := range out.Items {
		var item fileItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
		}

		createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
		if err != nil {
			c.logger.Warn("malformed createdAt on catalog item", "fileId", item.FileID, "err", err)
		}

		records = append(records, core.Metadata{
			FileID:    item.FileID,
			FileName:  item.FileName,
			FileType:  item.FileType,
			Owner:     item.UserID,
			Digest:    item.Digest,
			CreatedAt: createdAt,
		})
	}
	return records, nil
}

// Delete removes the record for the given owner and file id.
func (c *Catalog) Delete(ctx context.Context, owner, fileID string) error {
	_, err := c.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.table),
		Key: map[string]ddbtypes.AttributeValue{
			"userId": &ddbtypes.AttributeValueMemberS{Value: owner},
			"fileId": &ddbtypes.AttributeValueMemberS{Value: fileID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete item %q: %w", fileID, err)
	}
	return nil
}

// Close is a no-op; the underlying HTTP client needs no teardown.
func (c *Catalog) Close() error {
	return nil
}
