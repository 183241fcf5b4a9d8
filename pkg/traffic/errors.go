package traffic

import "errors"

var errCounters = errors.New("failed to read interface counters")
