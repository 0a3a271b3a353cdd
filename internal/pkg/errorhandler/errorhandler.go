package errorhandler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/edusave/edusave-api/internal/pkg/response"
)

type contextKey string

// RequestIDKey is the context key under which middleware stores the request ID
const RequestIDKey contextKey = "request_id"

// Internal logs an unexpected error with request context and sends a 500 envelope.
// Domain errors with a known mapping should be handled at the call site instead.
func Internal(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	log.Error().
		Str("request_id", RequestID(ctx)).
		Err(err).
		Msg(msg)

	response.InternalError(w)
}

// RequestID extracts the request ID from context, if set by middleware
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID returns a context carrying the request ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
