package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/product-catalog/internal/handler"
	"github.com/deppfellow/product-catalog/internal/repository"
	"github.com/deppfellow/product-catalog/internal/service"
	"github.com/deppfellow/product-catalog/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	s := testutil.NewTestServer(t)
	services, err := service.NewServices(s, &repository.Repositories{Product: testutil.NewProductStore()})
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRoutesRegistered(t *testing.T) {
	e := newTestRouter(t)

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /products",
		"POST /products",
		"GET /products/:id",
		"PUT /products/:id",
		"DELETE /products/:id",
		"GET /status",
		"GET /metrics",
		"GET /docs",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestStatusRoute(t *testing.T) {
	rec := get(newTestRouter(t), "/status")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestMetricsRoute(t *testing.T) {
	e := newTestRouter(t)
	get(e, "/products")

	rec := get(e, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catalog_http_requests_total{method="GET",route="/products",status="200"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	rec := get(newTestRouter(t), "/orders")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestRoutersDoNotShareMetrics(t *testing.T) {
	first := newTestRouter(t)
	second := newTestRouter(t)
	get(first, "/products")

	assert.NotContains(t, get(second, "/metrics").Body.String(), `route="/products"`)
}
