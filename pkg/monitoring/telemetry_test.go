package monitoring

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupExposesMetrics(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{ServiceName: "logistics-test"})
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	r := chi.NewRouter()
	r.Use(HTTPMetricsMiddleware)
	r.Get("/shipments/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/shipments/42", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	RecordCacheEvent(context.Background(), "shipments", CacheHit)
	RecordCacheFetch(context.Background(), "shipments", 5*time.Millisecond, nil)
	RecordDBLatency(context.Background(), "shipments", "query", time.Millisecond, errors.New("boom"))
	RecordEntityChange(context.Background(), "shipments", "update", "local")
	RecordAggregation(context.Background(), "dashboard-stats", time.Millisecond, []string{"payments"})

	metricsRec := httptest.NewRecorder()
	Handler().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(metricsRec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "http_requests_total")
	assert.Contains(t, text, `http_route="/shipments/{id}"`)
	assert.Contains(t, text, "query_cache_events_total")
	assert.Contains(t, text, "db_errors_total")
	assert.Contains(t, text, "aggregation_failures_total")
}

func TestRecordersAreNoopsBeforeSetup(t *testing.T) {
	// Instruments may already be registered by another test; either way these must not panic.
	assert.NotPanics(t, func() {
		RecordCacheEvent(context.Background(), "x", CacheMiss)
		RecordEntityChange(context.Background(), "x", "create", "remote")
	})
}
