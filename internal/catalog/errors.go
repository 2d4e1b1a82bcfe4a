package catalog

import "errors"

// ErrNotFound is returned when no record has the requested ID. All mutating
// operations report it uniformly; update does not silently no-op on a
// missing ID.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing or empty required field. The operation
// is aborted before any write.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "required field missing or empty: " + e.Field
}
