package spec

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout indicates a graph that cannot be laid out: a
// non-positive axis resolution, a zero-area canvas or a data set with no
// samples.
var ErrInvalidLayout = errors.New("invalid layout")

// ErrInvalidField indicates a configuration value outside its allowed range.
var ErrInvalidField = errors.New("invalid field")

// ValidationError reports which data set and which field failed validation.
// DataSet is empty for graph-level fields.
type ValidationError struct {
	DataSet string
	Field   string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.DataSet == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("data set %q: %s: %v", e.DataSet, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(dataSet, field string, err error) *ValidationError {
	return &ValidationError{
		DataSet: dataSet,
		Field:   field,
		Err:     err,
	}
}

// invalid builds a ValidationError wrapping sentinel with extra detail.
func invalid(dataSet, field string, sentinel error, format string, args ...any) *ValidationError {
	return NewValidationError(dataSet, field, fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...))
}
