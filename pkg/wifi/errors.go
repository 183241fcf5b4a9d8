package wifi

import "errors"

var (
	errScanFailed     = errors.New("wifi scan failed")
	errNoWifiTool     = errors.New("no wifi scanning tool for this platform")
	errMalformedField = errors.New("malformed scan field")
)
