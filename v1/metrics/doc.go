// Package metrics exposes Prometheus metrics for geoquery.
//
// NewMetrics builds a dedicated registry whose series all carry a "service"
// label, registers the request and storage series, and prepares an HTTP
// server serving the registry on Config.Address. FXModule starts and stops
// that server with the application.
//
// Series:
//   - requests_total{status}: HTTP requests by status code
//   - request_duration_seconds{endpoint}: HTTP request latency
//   - record_source_operations_total{component,operation,collection,status}
//   - record_source_operation_duration_seconds{component,operation,collection}
//   - record_source_result_documents{component,operation}
//   - filter_compile_errors_total{kind}: requests rejected before I/O
//
// *Metrics implements observability.Observer, so it can be attached to any
// recordsource adapter:
//
//	adapter := mongo.NewAdapter(db).WithObserver(m)
package metrics
