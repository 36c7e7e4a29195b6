package scraper

import (
	"errors"
	"fmt"
)

// ErrTransport is returned when the page could not be requested at all:
// an invalid URL, a DNS or connection failure, or a timeout.
var ErrTransport = errors.New("failed to connect")

// StatusError is returned when the site answers with a status other than
// 200 OK.
type StatusError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status code received.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}
