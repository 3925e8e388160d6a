// Package context carries per-request values (request id, scoped logger and
// resolved session) across echo handlers and plain context.Context callers.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header echoed back on every response.
const HeaderXRequestID = "X-Request-Id"

type ctxKey string

const (
	keyRequestID ctxKey = "request_id"
	keyLogger    ctxKey = "logger"
	keySession   ctxKey = "session"
)

// WithRequestScope tags ctx with the request id and a child of base that logs it.
func WithRequestScope(ctx context.Context, requestID string, base *slog.Logger) (context.Context, *slog.Logger) {
	scoped := base.With(slog.String("request_id", requestID))
	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyLogger, scoped)

	return ctx, scoped
}

// SetRequestID records the id on the echo context for response metadata.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(keyRequestID), requestID)
}

// RequestID returns the id bound to this request, falling back to the request context.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(string(keyRequestID)).(string); ok && id != "" {
		return id
	}

	return RequestIDFrom(c.Request().Context())
}

// RequestIDFrom returns the request id on ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

// LoggerFrom returns the request-scoped logger, or fallback outside a request.
func LoggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
