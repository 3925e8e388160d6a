package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campuseats/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.OrderSubmitted()
	m.OrderSubmitted()
	m.OrderStatusUpdated("ready")
	m.Login(service.LoginResultSuccess)
	m.Login(service.LoginResultFailure)
	m.Login(service.LoginResultFailure)
	m.SessionsPurged(3)
	m.EventPublishFailed()

	assert.InDelta(t, 2, testutil.ToFloat64(m.ordersSubmitted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.statusUpdates.WithLabelValues("ready")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.logins.WithLabelValues(service.LoginResultFailure)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.sessionsPurged), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.eventPublishErrors), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/menu-items", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `campuseats_http_requests_total{method="GET",route="/api/menu-items",status="200"} 1`)
	assert.Contains(t, string(body), "campuseats_http_request_duration_seconds_bucket")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
