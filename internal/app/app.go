// Package app wires configuration, AWS clients and the request handler
// together at process start.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sh3r4rd/image_uploads/internal/awsclient"
	"github.com/sh3r4rd/image_uploads/internal/config"
	"github.com/sh3r4rd/image_uploads/internal/handler"
	"github.com/sh3r4rd/image_uploads/internal/metadata"
	"github.com/sh3r4rd/image_uploads/internal/secrets"
	"github.com/sh3r4rd/image_uploads/internal/storage"
)

// NewLogger returns a JSON logger writing to w at env's level.
func NewLogger(w io.Writer, env config.Env) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: env.SlogLevel()}))
}

// Build resolves secrets and returns a ready handler. It is called once
// per process; the returned handler is reused for every invocation.
func Build(ctx context.Context, env config.Env, logger *slog.Logger) (*handler.Handler, error) {
	clients, err := awsclient.New(ctx, env)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(ctx, env, secrets.NewResolver(clients.SecretsManager), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	store := metadata.NewStore(clients.DynamoDB, cfg.TableName)
	presigner := storage.NewS3Presigner(clients.S3)

	logger.Info("handler configured",
		"region", cfg.Region,
		"table", store.Table(),
		"bucket_configured", cfg.BucketName != "")

	return handler.New(cfg, store, presigner, handler.WithLogger(logger)), nil
}
