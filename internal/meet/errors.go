package meet

import (
	"fmt"
	"net/http"
)

// RemoteServiceError reports a failed call to the Meet API.
type RemoteServiceError struct {
	// Op is the API operation (e.g., "create_space")
	Op string

	// StatusCode is the HTTP status returned by the API, or 0 when the
	// request never produced a response
	StatusCode int

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *RemoteServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("meet %s failed (%d %s): %v", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("meet %s failed: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}
