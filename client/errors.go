package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// Every failure an API call can produce maps onto one of these. The SDK
// layer converts all of them to "no survey" / "submission abandoned"; none
// reach the host application.
var (
	ErrNotConfigured   = errors.New("client not configured")
	ErrInvalidURL      = errors.New("invalid base url")
	ErrInvalidResponse = errors.New("response is not json")
	ErrNetwork         = errors.New("network failure")
	ErrDecoding        = errors.New("response decoding failed")
)

// StatusError reports a non-2xx HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.Code)
}
