package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// ErrBadRequest marks request bodies that could not be decoded.
var ErrBadRequest = errors.New("bad request")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), filters.IsCompileError(err):
		return http.StatusBadRequest
	case recordsource.IsNotFound(err):
		return http.StatusNotFound
	case recordsource.IsStorageUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// compileErrorKind labels compile errors for metrics. The empty string means
// err is not a compile error.
func compileErrorKind(err error) string {
	switch {
	case filters.IsInvalidFilterValue(err):
		return "invalid_value"
	case filters.IsUnknownFilterField(err):
		return "unknown_field"
	case filters.IsDuplicateTarget(err):
		return "duplicate_target"
	case filters.IsInvalidPipeline(err):
		return "invalid_pipeline"
	default:
		return ""
	}
}

func newErrorResponse(err error, status int) ErrorResponse {
	resp := ErrorResponse{
		Error:     err.Error(),
		Retryable: recordsource.IsRetryable(err),
	}
	if field, ok := filters.FieldOf(err); ok {
		resp.Field = field
	}
	if status == http.StatusInternalServerError {
		resp.Error = http.StatusText(status)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
