// Package httpapi serves the resale service as JSON over HTTP.
//
// Routes:
//
//	GET  /v1/records/{id}
//	POST /v1/records/search
//	POST /v1/records/average-price
//	GET  /v1/records/latest-postals
//	GET  /v1/listings/{id}
//	POST /v1/listings/search
//	GET  /v1/options
//	GET  /v1/options/towns
//	GET  /v1/options/flat-types
//	GET  /healthz
//
// Search bodies are resale.Request documents; unknown JSON fields are
// rejected. Errors are written as {"error": "...", "field": "...",
// "retryable": false} with a status derived from the error kind: 400 for
// filters that do not compile, 404 for missing documents, 503 when the
// record source is unreachable and 500 otherwise.
package httpapi
