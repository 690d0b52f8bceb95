// Command local serves the upload-url handler over HTTP for local
// development against real or emulated AWS services.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sh3r4rd/image_uploads/internal/app"
	"github.com/sh3r4rd/image_uploads/internal/config"
	"github.com/sh3r4rd/image_uploads/internal/localgw"
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

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", env.Port),
		Handler:           localgw.Router(h, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", env.Port, "path", localgw.UploadURLPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
