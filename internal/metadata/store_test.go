package metadata_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh3r4rd/image_uploads/internal/metadata"
	"github.com/sh3r4rd/image_uploads/internal/model"
)

type fakeDynamo struct {
	inputs []*dynamodb.UpdateItemInput
	err    error
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func stringAttr(t *testing.T, av types.AttributeValue) string {
	t.Helper()
	s, ok := av.(*types.AttributeValueMemberS)
	require.Truef(t, ok, "attribute is %T, want S", av)
	return s.Value
}

func TestUpsert(t *testing.T) {
	client := &fakeDynamo{}
	store := metadata.NewStore(client, "img-table")

	name, typ, text := "cat.jpg", "image/jpeg", "a cat"
	meta := model.NewImageMetadata(
		time.Date(2026, 3, 1, 8, 5, 9, 0, time.UTC),
		model.UploadQuery{FileName: &name, FileType: &typ, ExtractedText: &text},
	)

	require.NoError(t, store.Upsert(context.Background(), meta))
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	assert.Equal(t, "img-table", aws.ToString(in.TableName))
	assert.Equal(t, types.ReturnValueUpdatedNew, in.ReturnValues)
	assert.Equal(t,
		"SET extracted_text = :text, image_file_name = :image_file_name, image_type = :image_type, image_size = :image_size, process_time = :process_time",
		aws.ToString(in.UpdateExpression))

	assert.Equal(t, "2026-03-01 08:05:09|cat.jpg", stringAttr(t, in.Key["unique_id"]))

	values := in.ExpressionAttributeValues
	assert.Equal(t, "a cat", stringAttr(t, values[":text"]))
	assert.Equal(t, "cat.jpg", stringAttr(t, values[":image_file_name"]))
	assert.Equal(t, "/jpeg", stringAttr(t, values[":image_type"]))
	assert.Equal(t, "2026-03-01 08:05:09", stringAttr(t, values[":process_time"]))
	assert.IsType(t, &types.AttributeValueMemberNULL{}, values[":image_size"])
}

func TestUpsertMissingFields(t *testing.T) {
	client := &fakeDynamo{}
	store := metadata.NewStore(client, "img-table")

	meta := model.NewImageMetadata(time.Date(2026, 3, 1, 8, 5, 9, 0, time.UTC), model.UploadQuery{})

	require.NoError(t, store.Upsert(context.Background(), meta))
	require.Len(t, client.inputs, 1)

	values := client.inputs[0].ExpressionAttributeValues
	assert.Len(t, values, 5)
	assert.IsType(t, &types.AttributeValueMemberNULL{}, values[":text"])
	assert.IsType(t, &types.AttributeValueMemberNULL{}, values[":image_file_name"])
	assert.Equal(t, "", stringAttr(t, values[":image_type"]))
}

func TestUpsertFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "api error",
			err:      &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "table missing"},
			wantCode: "ResourceNotFoundException",
		},
		{
			name: "transport error",
			err:  errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := metadata.NewStore(&fakeDynamo{err: tt.err}, "img-table")

			err := store.Upsert(context.Background(), model.ImageMetadata{UniqueID: "k"})
			require.Error(t, err)
			assert.ErrorIs(t, err, metadata.ErrUpsert)
			assert.ErrorIs(t, err, tt.err)
			if tt.wantCode != "" {
				assert.Contains(t, err.Error(), tt.wantCode)
			}
		})
	}
}
