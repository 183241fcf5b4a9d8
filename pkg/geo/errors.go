package geo

import "errors"

var (
	errLookupFailed  = errors.New("geo lookup failed")
	errBadStatus     = errors.New("unexpected HTTP status")
	errInvalidAddr   = errors.New("invalid IP address")
	errNoProvider    = errors.New("no geo provider configured")
	errNotFound      = errors.New("address not found in database")
	errUnknownSource = errors.New("unknown geo provider")
)
