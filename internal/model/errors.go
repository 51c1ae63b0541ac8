package model

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldMissing is returned when neither known schema key is present for a
	// required attribute of a source-native record.
	ErrFieldMissing = errors.New("field missing")

	// ErrCompensation is returned when a compensation value cannot be coerced
	// to an integer.
	ErrCompensation = errors.New("invalid compensation")
)

// HTTPError wraps an HTTP status code returned by a job board.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
