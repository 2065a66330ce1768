package amadeus

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is returned when a request still gets a 401 after
// the single token refresh the gateway performs.
var ErrRetryExhausted = errors.New("amadeus: authentication retry exhausted")

// AuthError wraps a failed client-credentials grant.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "amadeus: token grant failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError carries a non-401 failure status through to the caller
// unmodified.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus: unexpected status %d", e.StatusCode)
}
