package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_BackendOutcomes(t *testing.T) {
	m := New()
	m.ObserveBackendCall("projects.get", 200, time.Millisecond)
	m.ObserveBackendCall("projects.get", 404, time.Millisecond)
	m.ObserveBackendCall("projects.get", 0, time.Millisecond)
	m.ObserveBackendCall("projects.get", 503, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendCalls.WithLabelValues("projects.get", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendCalls.WithLabelValues("projects.get", "client_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendCalls.WithLabelValues("projects.get", "transport_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendCalls.WithLabelValues("projects.get", "server_error")))
}

func TestMetrics_CacheAndEnrollment(t *testing.T) {
	m := New()
	m.CacheHit("project")
	m.CacheHit("project")
	m.CacheMiss("project")
	m.ObserveEnrollmentAction("request", "success")
	m.ObserveJob("purge_sessions", nil)
	m.ObserveJob("purge_sessions", assert.AnError)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("project", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("project", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.enrollmentActions.WithLabelValues("request", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("purge_sessions", "failure")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest("projects.list", http.MethodGet, 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `investiga_http_requests_total{method="GET",route="projects.list",status="200"} 1`)
}
