package filters

import (
	"errors"
	"fmt"
)

// Compile errors. All of them are raised before a query reaches storage.
var (
	// ErrInvalidFilterValue is returned when a bound or limit fails coercion.
	ErrInvalidFilterValue = errors.New("filters: invalid filter value")

	// ErrUnknownFilterField is returned when a filter name is neither a range,
	// a categorical filter nor an approved pass-through field.
	ErrUnknownFilterField = errors.New("filters: unknown filter field")

	// ErrInvalidPipeline is returned when an aggregation references a field
	// the schema does not know, or when stages are combined illegally.
	ErrInvalidPipeline = errors.New("filters: invalid pipeline")

	// ErrDuplicateTarget is returned when two logical filters resolve to the
	// same target field.
	ErrDuplicateTarget = errors.New("filters: duplicate target field")
)

// FieldError ties a compile error to the logical filter that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("filter %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// IsInvalidFilterValue checks if the error is caused by a value that failed coercion.
func IsInvalidFilterValue(err error) bool {
	return errors.Is(err, ErrInvalidFilterValue)
}

// IsUnknownFilterField checks if the error is caused by an unrecognised filter name.
func IsUnknownFilterField(err error) bool {
	return errors.Is(err, ErrUnknownFilterField)
}

// IsInvalidPipeline checks if the error is caused by an illegal aggregation.
func IsInvalidPipeline(err error) bool {
	return errors.Is(err, ErrInvalidPipeline)
}

// IsDuplicateTarget checks if the error is caused by a target field collision.
func IsDuplicateTarget(err error) bool {
	return errors.Is(err, ErrDuplicateTarget)
}

// IsCompileError reports whether err is any of the compile-time errors of
// this package. Compile errors are caused by the request, never by storage.
func IsCompileError(err error) bool {
	return IsInvalidFilterValue(err) ||
		IsUnknownFilterField(err) ||
		IsInvalidPipeline(err) ||
		IsDuplicateTarget(err)
}

// FieldOf returns the logical field name carried by err, if any.
func FieldOf(err error) (string, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field, true
	}
	return "", false
}
