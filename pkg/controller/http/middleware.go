package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

// LoggingMiddleware returns a middleware that logs HTTP requests and puts a
// request scoped logger on the request context
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx).With("request_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(ctxlog.With(r.Context(), logger))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// statusOf maps an error kind to an HTTP status code
func statusOf(kind types.ErrorKind) int {
	switch kind {
	case types.KindEmptyQuestion, types.KindMissingRepository, types.KindInvalidRepositoryFormat, types.KindTooManyRepositories:
		return http.StatusBadRequest
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindUnauthorized:
		return http.StatusUnauthorized
	case types.KindRateLimited:
		return http.StatusTooManyRequests
	case types.KindTimeout:
		return http.StatusGatewayTimeout
	case types.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string          `json:"error"`
	Kind  types.ErrorKind `json:"kind"`
}

// writeKindError writes err with the status derived from its kind.
// Unexpected failures are reported to Sentry.
func writeKindError(w http.ResponseWriter, r *http.Request, err error) {
	kind := types.KindOf(err)
	status := statusOf(kind)
	if status >= http.StatusInternalServerError {
		captureError(r.Context(), err)
	}
	writeError(w, err, status)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(errorResponse{
		Error: err.Error(),
		Kind:  types.KindOf(err),
	}); err != nil {
		// Can't get context here, so use background context
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

func captureError(ctx context.Context, err error) {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("kind", string(types.KindOf(err)))
	})
	if id := hub.CaptureException(err); id != nil {
		ctxlog.From(ctx).Warn("Error reported to Sentry", "event_id", *id)
	}
}
