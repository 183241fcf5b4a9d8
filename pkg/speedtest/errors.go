package speedtest

import "errors"

var (
	// ErrCancelled is returned by Run.Wait when the caller cancelled the run.
	ErrCancelled = errors.New("speed test cancelled")
	// ErrAllServersFailed is returned when no server produced a complete measurement.
	ErrAllServersFailed = errors.New("all speed test servers failed")

	errNoServers   = errors.New("no servers configured")
	errNoUploadURL = errors.New("no upload URL configured")
	errBadStatus   = errors.New("unexpected HTTP status")
	errShortBody   = errors.New("response body shorter than Content-Length")
)
