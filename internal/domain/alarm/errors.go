package alarm

import "fmt"

// ValidationError reports bad alarm parameters.
type ValidationError struct {
	// Field names the offending parameter.
	Field string
	// Index is the 1-based commit number that failed during interval
	// generation, zero otherwise.
	Index int
	// Reason describes the violated constraint.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("invalid %s for commit %d: %s", e.Field, e.Index, e.Reason)
	}

	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation on an unknown alarm id.
type NotFoundError struct {
	// ID is the id that was looked up.
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("alarm %q not found", e.ID)
}

func newRangeError(field string, maxValue int) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("must be between 0 and %d", maxValue),
	}
}
