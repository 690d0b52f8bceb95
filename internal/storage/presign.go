// Package storage issues pre-signed S3 upload URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrBucketRequired is returned by IssueWriteURL for an empty bucket.
// The handler answers that case before presigning; the check guards
// callers outside the handler.
var ErrBucketRequired = errors.New("bucket name is required")

// PresignPutObjectAPI is the subset of s3.PresignClient used by Presigner.
type PresignPutObjectAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Presigner issues time-limited PUT URLs.
type Presigner struct {
	client PresignPutObjectAPI
}

// NewPresigner wraps an existing presign client.
func NewPresigner(client PresignPutObjectAPI) *Presigner {
	return &Presigner{client: client}
}

// NewS3Presigner creates a Presigner from an S3 client.
func NewS3Presigner(client *s3.Client) *Presigner {
	return NewPresigner(s3.NewPresignClient(client))
}

// IssueWriteURL returns a pre-signed URL permitting one PUT of key into
// bucket with the given content type, valid for ttl. The content type is
// part of the signature, so the upload must send the same Content-Type.
func (p *Presigner) IssueWriteURL(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	if bucket == "" {
		return "", ErrBucketRequired
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	result, err := p.client.PresignPutObject(ctx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return result.URL, nil
}
