package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedResource is returned when a fetched resource lacks a field the
// aggregation depends on.
var ErrMalformedResource = errors.New("malformed resource")

// TransportError wraps a failed call to the GitHub API.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
