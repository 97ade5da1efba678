package recordsource

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is returned when the backing store cannot be
	// reached. It is retryable.
	ErrStorageUnavailable = errors.New("recordsource: storage unavailable")

	// ErrNotFound is returned by FindOne when no document has the given id.
	ErrNotFound = errors.New("recordsource: document not found")
)

// OperationError records the operation and collection that failed.
type OperationError struct {
	Op         string
	Collection string
	Err        error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s on %q: %v", e.Op, e.Collection, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Wrap annotates err with the failing operation and collection. It returns
// nil for a nil error.
func Wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var oe *OperationError
	if errors.As(err, &oe) && oe.Op == op && oe.Collection == collection {
		return err
	}
	return &OperationError{Op: op, Collection: collection, Err: err}
}

// IsStorageUnavailable checks if the error is a connectivity failure.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// IsNotFound checks if the error is a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether the caller may retry the operation.
func IsRetryable(err error) bool {
	return IsStorageUnavailable(err)
}
