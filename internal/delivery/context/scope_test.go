package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"campuseats/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newEchoContext()
	assert.Empty(t, RequestID(c))

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", RequestID(c))

	assert.Empty(t, RequestIDFrom(context.Background()))
}

func TestRequestID_FallsBackToRequestContext(t *testing.T) {
	c := newEchoContext()
	ctx, _ := WithRequestScope(c.Request().Context(), "req-ctx", slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.SetRequest(c.Request().WithContext(ctx))

	assert.Equal(t, "req-ctx", RequestID(c))
}

func TestWithRequestScope(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, fallback, LoggerFrom(context.Background(), fallback))

	ctx, scoped := WithRequestScope(context.Background(), "abc", fallback)
	assert.Equal(t, "abc", RequestIDFrom(ctx))
	assert.Same(t, scoped, LoggerFrom(ctx, fallback))
	assert.NotSame(t, fallback, scoped)
}

func TestSessionHelpers(t *testing.T) {
	c := newEchoContext()
	assert.Nil(t, SessionUserID(c))

	SetSession(c, &entity.Session{ID: "s1", UserID: 9})
	session, ok := GetSession(c)
	require.True(t, ok)
	assert.Equal(t, "s1", session.ID)
	require.NotNil(t, SessionUserID(c))
	assert.Equal(t, int64(9), *SessionUserID(c))
}
