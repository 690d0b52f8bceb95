// Package secrets resolves configuration values stored as JSON objects
// in AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

var (
	// ErrSecretNotFound is returned when the secret has no string value.
	ErrSecretNotFound = errors.New("secret has no string value")
	// ErrKeyNotFound is returned when the secret JSON lacks the requested key.
	ErrKeyNotFound = errors.New("key not found in secret")
)

// GetSecretValueAPI is the subset of the Secrets Manager client used here.
type GetSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Resolver reads values out of JSON secrets.
type Resolver struct {
	client GetSecretValueAPI
}

// NewResolver creates a Resolver backed by client.
func NewResolver(client GetSecretValueAPI) *Resolver {
	return &Resolver{client: client}
}

// Resolve fetches secretID and returns the string stored under key in
// its JSON SecretString. A key holding a non-string value is an error.
func (r *Resolver) Resolve(ctx context.Context, secretID, key string) (string, error) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("get secret %q (%s): %w", secretID, apiErr.ErrorCode(), err)
		}
		return "", fmt.Errorf("get secret %q: %w", secretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %q: %w", secretID, ErrSecretNotFound)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(*out.SecretString), &fields); err != nil {
		return "", fmt.Errorf("failed to decode secret %q: %w", secretID, err)
	}

	raw, ok := fields[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("secret %q key %q: %w", secretID, key, ErrKeyNotFound)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("secret %q key %q holds %T, want string", secretID, key, raw)
	}
	return value, nil
}
