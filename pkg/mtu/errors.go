package mtu

import "errors"

var (
	errInvalidRange  = errors.New("invalid MTU search range")
	errInvalidAction = errors.New("invalid MTU action")
)
