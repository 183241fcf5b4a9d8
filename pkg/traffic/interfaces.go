package traffic

import (
	"context"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Counters reads cumulative per-interface byte counters.
type Counters interface {
	IOCounters(ctx context.Context) ([]psnet.IOCountersStat, error)
}
