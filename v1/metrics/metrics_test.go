package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdbmap/geoquery/v1/observability"
)

func newTestMetrics() *Metrics {
	return NewMetrics(Config{Address: ":0", ServiceName: "geoquery-test"})
}

func TestObserveOperation(t *testing.T) {
	m := newTestMetrics()

	m.ObserveOperation(observability.OperationContext{
		Component: "mongo",
		Operation: "find_many",
		Resource:  "cleanedResale",
		Duration:  12 * time.Millisecond,
		Size:      300,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "mongo",
		Operation: "find_many",
		Resource:  "cleanedResale",
		Error:     errors.New("unreachable"),
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("mongo", "find_many", "cleanedResale", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("mongo", "find_many", "cleanedResale", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.operationDuration))
}

func TestRequestSeries(t *testing.T) {
	m := newTestMetrics()

	m.IncrementRequests("200")
	m.IncrementRequests("200")
	m.IncrementCompileErrors("unknown_filter_field")
	m.RecordRequestDuration(time.Now().Add(-time.Second), "/v1/records/search")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.compileErrors.WithLabelValues("unknown_filter_field")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestServerExposesServiceLabel(t *testing.T) {
	m := newTestMetrics()
	m.IncrementRequests("200")

	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `requests_total{service="geoquery-test",status="200"} 1`), body)
}
