package grpc

import (
	"errors"
)

var (
	errInternalError          = errors.New("internal error")
	errHealthServerRegistered = errors.New("health server already registered")
)
