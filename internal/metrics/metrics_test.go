package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusBucket(t *testing.T) {
	assert.Equal(t, "1xx", statusBucket(101))
	assert.Equal(t, "2xx", statusBucket(204))
	assert.Equal(t, "3xx", statusBucket(302))
	assert.Equal(t, "4xx", statusBucket(409))
	assert.Equal(t, "5xx", statusBucket(502))
}

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("test_op", "200"))
	ObserveUpstream("test_op", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("test_op", "200"))
	assert.Equal(t, before+1, after)
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/loans/:loanId", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/loans/:loanId", "2xx"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/loans/42", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/loans/:loanId", "2xx"))
	assert.Equal(t, before+1, after)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "smartlend_portal_http_requests_total"))
}
