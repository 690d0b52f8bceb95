// Package handler implements the API Gateway upload-url endpoint: it
// records image metadata and returns a pre-signed S3 PUT URL.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/sh3r4rd/image_uploads/internal/config"
	"github.com/sh3r4rd/image_uploads/internal/model"
)

// Public messages appended to model.MsgUnexpectedPrefix. Raw errors are
// logged, never returned to the caller.
const (
	msgMetadataFailed = "failed to record image metadata"
	msgPresignFailed  = "failed to generate upload URL"
	msgInternal       = "internal error"
)

// MetadataStore upserts one metadata record per request.
type MetadataStore interface {
	Upsert(ctx context.Context, meta model.ImageMetadata) error
}

// URLIssuer issues pre-signed write URLs.
type URLIssuer interface {
	IssueWriteURL(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error)
}

// Handler serves GET upload-url requests. It holds no per-request state
// and is safe for concurrent use.
type Handler struct {
	store  MetadataStore
	urls   URLIssuer
	bucket string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the time source used for process_time.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// New builds a Handler from resolved configuration.
func New(cfg config.Config, store MetadataStore, urls URLIssuer, opts ...Option) *Handler {
	h := &Handler{
		store:  store,
		urls:   urls,
		bucket: cfg.BucketName,
		ttl:    model.PresignedURLTTLSeconds * time.Second,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one gateway request. It always returns a well-formed
// response and a nil error so the gateway never sees an invocation
// failure.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	log := h.logger.With("request_id", requestID(ctx, req), "method", req.HTTPMethod)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling request", "panic", fmt.Sprint(r))
			resp, err = unexpected(msgInternal), nil
		}
	}()

	if req.HTTPMethod != http.MethodGet {
		log.Warn("method not allowed")
		return respond(http.StatusMethodNotAllowed, model.ErrorResponse{Error: model.MsgMethodNotAllowed}), nil
	}

	q := model.ParseUploadQuery(req.QueryStringParameters)
	meta := model.NewImageMetadata(h.now(), q)
	log = log.With("unique_id", meta.UniqueID)

	if err := h.store.Upsert(ctx, meta); err != nil {
		log.Error("metadata upsert failed", "err", err)
		return unexpected(msgMetadataFailed), nil
	}

	fileName, fileType := model.Value(q.FileName), model.Value(q.FileType)
	if fileName == "" || fileType == "" {
		log.Warn("missing required query parameters")
		return respond(http.StatusBadRequest, model.ErrorResponse{Error: model.MsgMissingParams}), nil
	}

	if h.bucket == "" {
		log.Error("bucket is not configured")
		return respond(http.StatusInternalServerError, model.ErrorResponse{Error: model.MsgBucketNotConfigured}), nil
	}

	uploadURL, err := h.urls.IssueWriteURL(ctx, h.bucket, fileName, fileType, h.ttl)
	if err != nil {
		log.Error("presign failed", "err", err)
		return unexpected(msgPresignFailed), nil
	}

	log.Info("issued upload URL", "key", fileName, "content_type", fileType)
	return respond(http.StatusOK, model.UploadResponse{UploadURL: uploadURL}), nil
}

// CORSHeaders returns the headers attached to every response.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "OPTIONS,GET",
	}
}

func unexpected(msg string) events.APIGatewayProxyResponse {
	return respond(http.StatusInternalServerError, model.ErrorResponse{Error: model.MsgUnexpectedPrefix + msg})
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// pre-signed URLs carry '&' in their query string
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"` + model.MsgUnexpectedPrefix + msgInternal + `"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    CORSHeaders(),
		Body:       strings.TrimSuffix(buf.String(), "\n"),
	}
}

func requestID(ctx context.Context, req events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return req.RequestContext.RequestID
}
