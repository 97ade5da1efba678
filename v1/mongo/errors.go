package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hdbmap/geoquery/v1/filters"
	"github.com/hdbmap/geoquery/v1/recordsource"
)

// Server error codes reported for pipelines the server refuses to run.
var invalidPipelineCodes = []int{
	2,     // BadValue
	9,     // FailedToParse
	14,    // TypeMismatch
	15952, // unknown group operator
	16410, // field path references must be prefixed with '$'
	17276, // use of undefined variable
	40323, // a pipeline stage specification object must contain exactly one field
	40324, // unrecognized pipeline stage name
	40352, // FieldPath cannot be constructed with empty string
}

// TranslateError maps driver errors to recordsource and filters sentinels.
// Context cancellation is returned unchanged; deadlines count as timeouts.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, mongo.ErrNoDocuments):
		return recordsource.ErrNotFound
	case errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		isServerSelectionError(err):
		return fmt.Errorf("%w: %v", recordsource.ErrStorageUnavailable, err)
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		for _, code := range invalidPipelineCodes {
			if serverErr.HasErrorCode(code) {
				return fmt.Errorf("%w: %v", filters.ErrInvalidPipeline, err)
			}
		}
	}

	return err
}

// isServerSelectionError detects topology selection failures, which the
// driver reports through a type in an internal package.
func isServerSelectionError(err error) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch fmt.Sprintf("%T", e) {
		case "topology.ServerSelectionError", "*topology.ServerSelectionError":
			return true
		}
	}
	return false
}
