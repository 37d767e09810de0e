package client

import (
	"errors"
	"fmt"
)

// StatusError is returned for responses outside the 2xx range
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: unexpected status %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

// IsStatusError reports whether err carries an HTTP status failure
func IsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// errLabelWrite is what legacy mode reports when a check fails to render
// its label.
var errLabelWrite = errors.New("connect label has no text setter")
