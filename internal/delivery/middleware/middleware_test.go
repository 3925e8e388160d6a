package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	mw := NewRequestIDMiddleware(logger)

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "reuses client id", header: "abc-123", reuse: true},
		{name: "generates when missing", header: ""},
		{name: "replaces oversized id", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			err := mw.Process(func(c echo.Context) error {
				seen = deliverycontext.RequestIDFrom(c.Request().Context())
				assert.NotNil(t, deliverycontext.LoggerFrom(c.Request().Context(), nil))

				return nil
			})(c)
			require.NoError(t, err)

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			if tt.reuse {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}
		})
	}
}

func TestLoggerMiddleware_LogsServerErrorsWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	mw := NewLoggerMiddleware(logger, &config.Config{})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/orders/1", nil), httptest.NewRecorder())

	_ = mw.Handle(func(echo.Context) error { return domainerrors.ErrOrderNotFound })(c)
	assert.Empty(t, buf.String())

	_ = mw.Handle(func(echo.Context) error { return errors.New("boom") })(c)
	assert.Contains(t, buf.String(), "status=500")
}

func TestMetricsMiddleware_ObservesRoute(t *testing.T) {
	m := metrics.New()
	e := echo.New()
	e.Use(NewMetricsMiddleware(m).Handle)
	e.GET("/orders/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/7", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	count, err := testutil.GatherAndCount(m.Registry(), "campuseats_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
