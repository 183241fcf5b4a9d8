package agent

import "errors"

var (
	errAlreadyStarted = errors.New("agent already started")
	errInvalidConfig  = errors.New("invalid agent configuration")
)
