package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/product-catalog/internal/errs"
	"github.com/deppfellow/product-catalog/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) (*echo.Echo, *Middlewares) {
	t.Helper()

	m := NewMiddlewares(testutil.NewTestServer(t))
	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(
		RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Metrics.Instrument(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
	)
	return e, m
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestIDGenerated(t *testing.T) {
	e, _ := newTestEcho(t)
	var seen string
	e.GET("/ping", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	rec := serve(e, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, http.MethodGet, "/ping", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = serve(e, http.MethodGet, "/ping", http.Header{RequestIDHeader: {strings.Repeat("x", 500)}})
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestContextLoggerReachesRequestContext(t *testing.T) {
	e, _ := newTestEcho(t)
	var fromEcho, fromCtx *zerolog.Logger
	e.GET("/ping", func(c echo.Context) error {
		fromEcho = GetLogger(c)
		fromCtx = zerolog.Ctx(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	serve(e, http.MethodGet, "/ping", nil)
	require.NotNil(t, fromEcho)
	require.NotNil(t, fromCtx)
	assert.NotEqual(t, zerolog.Disabled, fromCtx.GetLevel())
}

func TestGetLoggerWithoutEnhancer(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}

func TestGlobalErrorHandlerRouteNotFound(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := serve(e, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Route not found", body.Message)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestGlobalErrorHandlerHTTPError(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/bad", func(c echo.Context) error {
		return errs.NewBadRequestError("nope", true, nil, []errs.FieldError{{Field: "price", Error: "is required"}})
	})

	rec := serve(e, http.MethodGet, "/bad", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "nope", body.Message)
	assert.True(t, body.Override)
	assert.Len(t, body.Errors, 1)
}

func TestGlobalErrorHandlerDatabaseError(t *testing.T) {
	e, _ := newTestEcho(t)
	e.POST("/dup", func(c echo.Context) error {
		return &pgconn.PgError{Code: "23505", TableName: "products", ConstraintName: "products_name_key"}
	})

	rec := serve(e, http.MethodPost, "/dup", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PRODUCT_ALREADY_EXISTS", decodeError(t, rec).Code)
}

func TestGlobalErrorHandlerHidesUnknownErrors(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/boom", func(c echo.Context) error { return errors.New("secret dsn leaked") })

	rec := serve(e, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestRecoverBecomes500(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/panic", func(c echo.Context) error { panic("kaboom") })

	rec := serve(e, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsRecordFinalStatus(t *testing.T) {
	e, m := newTestEcho(t)
	e.GET("/items/:id", func(c echo.Context) error {
		return errs.NewNotFoundError("missing", false, nil)
	})
	e.GET("/metrics", echo.WrapHandler(m.Metrics.Handler()))

	serve(e, http.MethodGet, "/items/1", nil)
	serve(e, http.MethodGet, "/items/2", nil)

	serve(e, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.Metrics.requests.WithLabelValues("GET", "/items/:id", "404")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.Metrics.requests.WithLabelValues("GET", "unmatched", "404")))

	rec := serve(e, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog_http_request_duration_seconds")
}
