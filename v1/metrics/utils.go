package metrics

import (
	"time"

	"github.com/hdbmap/geoquery/v1/observability"
)

// IncrementRequests increments the request counter for status.
func (m *Metrics) IncrementRequests(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// RecordRequestDuration records the time elapsed since start for endpoint.
func (m *Metrics) RecordRequestDuration(start time.Time, endpoint string) {
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// IncrementCompileErrors counts a request rejected at compile time.
func (m *Metrics) IncrementCompileErrors(kind string) {
	m.compileErrors.WithLabelValues(kind).Inc()
}

// ObserveOperation records one record source operation.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	m.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, ctx.Resource, observability.Status(ctx)).Inc()
	m.operationDuration.WithLabelValues(ctx.Component, ctx.Operation, ctx.Resource).Observe(ctx.Duration.Seconds())
	if ctx.Error == nil {
		m.resultDocuments.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}
