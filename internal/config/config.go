// Package config loads process-wide settings once at cold start.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Env is the environment-provided configuration.
type Env struct {
	Region         string `env:"AWS_REGION" env-default:"us-east-1" env-description:"object store region"`
	MetadataRegion string `env:"METADATA_REGION" env-default:"us-east-1" env-description:"Secrets Manager and DynamoDB region"`

	TableSecretID   string `env:"TABLE_SECRET_ID" env-default:"img_process_table"`
	TableSecretKey  string `env:"TABLE_SECRET_KEY" env-default:"img_process_table"`
	BucketSecretID  string `env:"BUCKET_SECRET_ID" env-default:"bucket"`
	BucketSecretKey string `env:"BUCKET_SECRET_KEY" env-default:"bucket"`

	Endpoint       string `env:"AWS_ENDPOINT_URL" env-description:"endpoint override for S3-compatible or local AWS emulators"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Port     string `env:"PORT" env-default:"8080"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// SlogLevel parses LogLevel, falling back to info.
func (e Env) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(e.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Config is the resolved, read-only configuration shared by every
// invocation in a process.
type Config struct {
	Region     string
	TableName  string
	BucketName string
}

// SecretResolver looks up a key inside a named secret.
type SecretResolver interface {
	Resolve(ctx context.Context, secretID, key string) (string, error)
}

// Resolve builds Config from env, fetching the table and bucket names
// through resolver. The table name is required. A bucket that cannot be
// resolved leaves BucketName empty; requests then fail individually.
func Resolve(ctx context.Context, env Env, resolver SecretResolver, logger *slog.Logger) (Config, error) {
	table, err := resolver.Resolve(ctx, env.TableSecretID, env.TableSecretKey)
	if err != nil {
		return Config{}, fmt.Errorf("resolve table name: %w", err)
	}
	if table == "" {
		return Config{}, errors.New("resolve table name: empty value")
	}

	bucket, err := resolver.Resolve(ctx, env.BucketSecretID, env.BucketSecretKey)
	if err != nil {
		logger.Warn("bucket name not resolved", "secret_id", env.BucketSecretID, "err", err)
		bucket = ""
	}

	return Config{
		Region:     env.Region,
		TableName:  table,
		BucketName: bucket,
	}, nil
}
