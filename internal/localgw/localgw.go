// Package localgw serves the Lambda handler over plain HTTP so it can
// be exercised locally without API Gateway.
package localgw

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// UploadURLPath is the route the handler is mounted on.
const UploadURLPath = "/upload-url"

// Invoker is satisfied by handler.Handler.
type Invoker interface {
	Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

// Router returns a chi router exposing inv on UploadURLPath for every
// method, plus a health check.
func Router(inv Invoker, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.HandleFunc(UploadURLPath, Adapt(inv, logger))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

// Adapt converts HTTP requests into API Gateway proxy events and writes
// the proxy response back.
func Adapt(inv Invoker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := inv.Handle(r.Context(), ToProxyRequest(r))
		if err != nil {
			// API Gateway answers 502 when the integration itself fails.
			logger.Error("handler returned error", "err", err)
			http.Error(w, `{"message":"Internal server error"}`, http.StatusBadGateway)
			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := w.Write([]byte(resp.Body)); err != nil {
			logger.Warn("failed to write response", "status", resp.StatusCode, "err", err)
		}
	}
}

// ToProxyRequest maps r onto the REST API proxy event shape. Repeated
// keys keep their last value in the single-value maps. Query and header
// maps are nil when empty, as API Gateway sends null for them.
func ToProxyRequest(r *http.Request) events.APIGatewayProxyRequest {
	req := events.APIGatewayProxyRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Resource:   r.URL.Path,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  uuid.NewString(),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Identity:   events.APIGatewayRequestIdentity{SourceIP: r.RemoteAddr},
		},
	}

	if query := r.URL.Query(); len(query) > 0 {
		req.QueryStringParameters = make(map[string]string, len(query))
		req.MultiValueQueryStringParameters = map[string][]string(query)
		for k, v := range query {
			req.QueryStringParameters[k] = v[len(v)-1]
		}
	}

	if len(r.Header) > 0 {
		req.Headers = make(map[string]string, len(r.Header))
		req.MultiValueHeaders = map[string][]string(r.Header)
		for k, v := range r.Header {
			req.Headers[k] = v[len(v)-1]
		}
	}
	return req
}
