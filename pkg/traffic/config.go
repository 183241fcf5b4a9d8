package traffic

import (
	"time"

	"github.com/carverauto/netdiag/pkg/config"
)

// Config sets the sampling interval.
type Config struct {
	Interval config.Duration `json:"interval" yaml:"interval"`
}

func (c *Config) Validate() error {
	if c.Interval <= 0 {
		c.Interval = config.Duration(DefaultInterval)
	}

	return nil
}

// Sampler builds a host sampler with the configured interval.
func (c *Config) Sampler() *Sampler {
	return NewSampler(HostCounters{}, time.Duration(c.Interval))
}
