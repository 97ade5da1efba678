package metrics

import (
	"time"

	"github.com/hdbmap/geoquery/v1/observability"
)

// MetricsCollector is the recording surface used by the HTTP layer.
type MetricsCollector interface {
	observability.Observer

	// IncrementRequests counts one request with the given status.
	IncrementRequests(status string)

	// RecordRequestDuration observes the time elapsed since start for endpoint.
	RecordRequestDuration(start time.Time, endpoint string)

	// IncrementCompileErrors counts one request rejected at compile time.
	IncrementCompileErrors(kind string)
}

var _ MetricsCollector = (*Metrics)(nil)
