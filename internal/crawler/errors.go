package crawler

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidStart is returned when the start page is not a valid identifier.
	ErrInvalidStart = errors.New("invalid start page")

	// ErrHopLimit is returned when a caller-imposed page limit is exceeded
	// before the walk terminates.
	ErrHopLimit = errors.New("hop limit exceeded")

	// ErrUnexpectedStatus is wrapped by FetchError for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// FetchError reports that a page could not be loaded: the network failed,
// the page does not exist, or its content could not be parsed. The Walker
// never retries it; the run is aborted.
type FetchError struct {
	// URL is the identifier that was being fetched.
	URL string

	// StatusCode is the HTTP status for unexpected responses, 0 otherwise.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %v: %d %s", e.URL, e.Err, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
