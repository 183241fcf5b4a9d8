package health

import "errors"

var (
	errNoGateway      = errors.New("no default gateway")
	errInvalidWeights = errors.New("health weights must be non-negative and sum to a positive value")
	errInvalidTiers   = errors.New("DNS tiers must be sorted by ascending latency")
	errInvalidFloor   = errors.New("DNS floor score must be within 0..100")
	errPanic          = errors.New("health check panicked")
)
