package publicip

import "errors"

var (
	errNoServers       = errors.New("no servers configured")
	errEmptyServer     = errors.New("empty server address")
	errBindingRejected = errors.New("STUN binding rejected")
	errNoMapping       = errors.New("no STUN server returned a mapping")
	errBadStatus       = errors.New("unexpected HTTP status")
	errInvalidAddress  = errors.New("response is not an IP address")
	errAllFailed       = errors.New("all resolvers failed")
)
