// Package awsclient builds the AWS SDK clients used by the service.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/sh3r4rd/image_uploads/internal/config"
)

// Clients groups the SDK clients created once per process.
type Clients struct {
	S3             *s3.Client
	DynamoDB       *dynamodb.Client
	SecretsManager *secretsmanager.Client
}

// New loads the default credential chain and creates the clients. S3
// lives in env.Region; Secrets Manager and DynamoDB in env.MetadataRegion.
func New(ctx context.Context, env config.Env) (*Clients, error) {
	objectCfg, err := load(ctx, env.Region)
	if err != nil {
		return nil, err
	}
	metadataCfg, err := load(ctx, env.MetadataRegion)
	if err != nil {
		return nil, err
	}

	endpoint := func(base **string) {
		if env.Endpoint != "" {
			*base = aws.String(env.Endpoint)
		}
	}

	return &Clients{
		S3: s3.NewFromConfig(objectCfg, func(o *s3.Options) {
			o.UsePathStyle = env.S3UsePathStyle
			endpoint(&o.BaseEndpoint)
		}),
		DynamoDB: dynamodb.NewFromConfig(metadataCfg, func(o *dynamodb.Options) {
			endpoint(&o.BaseEndpoint)
		}),
		SecretsManager: secretsmanager.NewFromConfig(metadataCfg, func(o *secretsmanager.Options) {
			endpoint(&o.BaseEndpoint)
		}),
	}, nil
}

func load(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for %s: %w", region, err)
	}
	return cfg, nil
}
