package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	c := metrics.NewCollector("test")

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/notes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/notes/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.HTTPRequests))
}

func TestObserveStoreOp(t *testing.T) {
	c := metrics.NewCollector("test")

	c.ObserveStoreOp("find", time.Millisecond, nil)
	c.ObserveStoreOp("find", time.Millisecond, nil)
	c.ObserveStoreOp("find", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.StoreOperations.WithLabelValues("find", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.StoreOperations.WithLabelValues("find", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := metrics.NewCollector("test")
	c.ObserveStoreOp("insert", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_store_operations_total{operation="insert",status="success"} 1`)
}
