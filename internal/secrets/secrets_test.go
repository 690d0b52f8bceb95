package secrets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh3r4rd/image_uploads/internal/secrets"
)

type fakeSecrets struct {
	values map[string]*string
	err    error
	calls  []string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	id := aws.ToString(in.SecretId)
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.values[id]}, nil
}

func TestResolve(t *testing.T) {
	client := &fakeSecrets{values: map[string]*string{
		"bucket":            aws.String(`{"bucket":"my-bucket"}`),
		"img_process_table": aws.String(`{"img_process_table":"img-table","other":1}`),
	}}
	r := secrets.NewResolver(client)

	bucket, err := r.Resolve(context.Background(), "bucket", "bucket")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)

	table, err := r.Resolve(context.Background(), "img_process_table", "img_process_table")
	require.NoError(t, err)
	assert.Equal(t, "img-table", table)

	assert.Equal(t, []string{"bucket", "img_process_table"}, client.calls)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeSecrets
		key     string
		wantErr error
	}{
		{
			name:    "missing secret string",
			client:  &fakeSecrets{values: map[string]*string{}},
			key:     "bucket",
			wantErr: secrets.ErrSecretNotFound,
		},
		{
			name:    "missing key",
			client:  &fakeSecrets{values: map[string]*string{"bucket": aws.String(`{"name":"x"}`)}},
			key:     "bucket",
			wantErr: secrets.ErrKeyNotFound,
		},
		{
			name:    "null key",
			client:  &fakeSecrets{values: map[string]*string{"bucket": aws.String(`{"bucket":null}`)}},
			key:     "bucket",
			wantErr: secrets.ErrKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := secrets.NewResolver(tt.client).Resolve(context.Background(), "bucket", tt.key)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveInvalidJSON(t *testing.T) {
	client := &fakeSecrets{values: map[string]*string{"bucket": aws.String("my-bucket")}}

	_, err := secrets.NewResolver(client).Resolve(context.Background(), "bucket", "bucket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode secret")
}

func TestResolveNonStringValue(t *testing.T) {
	client := &fakeSecrets{values: map[string]*string{"bucket": aws.String(`{"bucket":42}`)}}

	_, err := secrets.NewResolver(client).Resolve(context.Background(), "bucket", "bucket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want string")
}

func TestResolveAPIError(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "no such secret"}
	client := &fakeSecrets{err: apiErr}

	_, err := secrets.NewResolver(client).Resolve(context.Background(), "bucket", "bucket")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apiErr))
	assert.Contains(t, err.Error(), "ResourceNotFoundException")
}
