// Command upload-url is the Lambda function behind the API Gateway
// upload-url endpoint.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sh3r4rd/image_uploads/internal/app"
	"github.com/sh3r4rd/image_uploads/internal/config"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stdout, env)
	slog.SetDefault(logger)

	h, err := app.Build(context.Background(), env, logger)
	if err != nil {
		logger.Error("Failed to initialize handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
