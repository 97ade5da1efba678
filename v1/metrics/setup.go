package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry, the HTTP server exposing it and the series
// recorded by geoquery.
type Metrics struct {
	// Server serves the registry at /metrics.
	Server *http.Server

	// Registry is the registry all series are registered with.
	Registry *prometheus.Registry

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	resultDocuments   *prometheus.HistogramVec
	compileErrors     *prometheus.CounterVec
}

// NewMetrics creates the registry, registers every series and prepares the
// metrics server. The server is started by RegisterMetricsLifecycle.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.requestsTotal = createCounterVec("requests_total", "Total number of processed requests", []string{"status"})
	m.requestDuration = createHistogramVec("request_duration_seconds", "Duration of HTTP requests in seconds", []string{"endpoint"}, prometheus.DefBuckets)
	m.operationsTotal = createCounterVec("record_source_operations_total", "Total number of record source operations", []string{"component", "operation", "collection", "status"})
	m.operationDuration = createHistogramVec("record_source_operation_duration_seconds", "Duration of record source operations in seconds", []string{"component", "operation", "collection"}, prometheus.DefBuckets)
	m.resultDocuments = createHistogramVec("record_source_result_documents", "Number of documents returned per record source operation", []string{"component", "operation"}, prometheus.ExponentialBuckets(1, 4, 8))
	m.compileErrors = createCounterVec("filter_compile_errors_total", "Total number of requests rejected while compiling filters", []string{"kind"})

	wrappedRegistry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.operationsTotal,
		m.operationDuration,
		m.resultDocuments,
		m.compileErrors,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}

func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}
