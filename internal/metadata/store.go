// Package metadata persists image processing records in DynamoDB.
package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/sh3r4rd/image_uploads/internal/model"
)

// ErrUpsert wraps every failure to write a metadata record.
var ErrUpsert = errors.New("failed to record image metadata")

const updateExpression = "SET extracted_text = :text, image_file_name = :image_file_name, " +
	"image_type = :image_type, image_size = :image_size, process_time = :process_time"

// UpdateItemAPI is the subset of the DynamoDB client used by Store.
type UpdateItemAPI interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Store writes ImageMetadata items to a single table.
type Store struct {
	client UpdateItemAPI
	table  string
}

// NewStore creates a Store for table.
func NewStore(client UpdateItemAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// Table returns the DynamoDB table name.
func (s *Store) Table() string { return s.table }

// Upsert creates or overwrites the item keyed by meta.UniqueID.
func (s *Store) Upsert(ctx context.Context, meta model.ImageMetadata) error {
	input, err := s.updateInput(meta)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpsert, err)
	}

	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: %s: %w", ErrUpsert, apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("%w: %w", ErrUpsert, err)
	}
	return nil
}

func (s *Store) updateInput(meta model.ImageMetadata) (*dynamodb.UpdateItemInput, error) {
	key, err := attributevalue.Marshal(meta.UniqueID)
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}

	item, err := attributevalue.MarshalMap(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}

	return &dynamodb.UpdateItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"unique_id": key,
		},
		UpdateExpression: aws.String(updateExpression),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":text":            item["extracted_text"],
			":image_file_name": item["image_file_name"],
			":image_type":      item["image_type"],
			":image_size":      item["image_size"],
			":process_time":    item["process_time"],
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	}, nil
}
