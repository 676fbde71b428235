package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The package must keep its collectors off the global default registry so
// that processes importing other instrumented libraries do not collide on
// the runtime collectors.
func TestGlobalRegistryUntouched(t *testing.T) {
	err := prometheus.Register(collectors.NewGoCollector())
	require.NoError(t, err)
	prometheus.Unregister(collectors.NewGoCollector())
}

func TestHandlerServesOwnRegistry(t *testing.T) {
	OrdersCreated.WithLabelValues("web").Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bloom_orders_created_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	handler := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/brew", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	count := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/brew", "418"))
	assert.GreaterOrEqual(t, count, 1.0)
}
