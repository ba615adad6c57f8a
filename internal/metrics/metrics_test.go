package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "/api/series", 200, time.Now())
	m.ObserveRequest("GET", "/api/series", 404, time.Now())
	m.ObserveLogin("failure")
	m.ObserveSeriesWrite("create", nil)
	m.ObserveSeriesWrite("create", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/series", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/series", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeriesWrites.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeriesWrites.WithLabelValues("create", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", 200, time.Now())
	m.ObserveLogin("success")
	m.ObserveSeriesWrite("delete", nil)
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveLogin("success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `seriestrack_login_attempts_total{result="success"} 1`)
}
