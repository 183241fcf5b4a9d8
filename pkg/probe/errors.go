package probe

import "errors"

var (
	errNoIPv4Address   = errors.New("no IPv4 address for target")
	errEmptyTarget     = errors.New("empty target")
	errNoPorts         = errors.New("no TCP ports configured")
	errUnknownMode     = errors.New("unknown probe mode")
	errSocketForbidden = errors.New("ICMP socket not permitted")
)
