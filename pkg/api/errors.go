package api

import "errors"

var (
	errNotConfigured    = errors.New("endpoint not configured")
	errUnknownDirection = errors.New("direction must be download or upload")
	errInvalidLimit     = errors.New("limit must be a positive integer")
)
