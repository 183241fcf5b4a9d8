package traceroute

import "errors"

var (
	// ErrTracerUnavailable is returned when the tracer process cannot start.
	ErrTracerUnavailable = errors.New("route tracer unavailable")
	// ErrAlreadyConsumed is returned when a trace sequence is iterated twice.
	ErrAlreadyConsumed = errors.New("trace already consumed")

	errInvalidTarget = errors.New("invalid trace target")
)
