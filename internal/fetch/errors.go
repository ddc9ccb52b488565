package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for content fetching. Use errors.Is() in calling code.
var (
	// ErrInvalidURL indicates a URL that matches neither the short-link
	// nor the query-parameter video URL shape.
	ErrInvalidURL = errors.New("unrecognized video URL")

	// ErrTranscriptUnavailable indicates no transcript exists in any
	// attempted language, including auto-generated tracks.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
)

// StatusError reports a non-2xx response while fetching text content.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}
