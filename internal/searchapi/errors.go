package searchapi

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// NetworkError means a request did not complete: transport failure,
// timeout, or a non-success status from the service
type NetworkError struct {
	Op         string // "suggest" or "search"
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request was abandoned because it took too long
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// MalformedResponseError means the body could not be parsed or lacked expected fields
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// errMissingField is wrapped by MalformedResponseError when a required key is absent
var errMissingField = errors.New("missing field")

// IsRecoverable reports whether err belongs to the search service taxonomy.
// Both kinds leave the search box usable.
func IsRecoverable(err error) bool {
	var netErr *NetworkError
	var malformed *MalformedResponseError
	return errors.As(err, &netErr) || errors.As(err, &malformed)
}
