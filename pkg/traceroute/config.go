package traceroute

import (
	"runtime"
	"strconv"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
)

const (
	defaultMaxHops = 30
	defaultTimeout = 3 * time.Second
)

// Flavor selects the tracer command line and output grammar.
type Flavor string

const (
	FlavorUnix    Flavor = "unix"
	FlavorWindows Flavor = "windows"
)

// Config configures the traceroute engine.
type Config struct {
	Command string          `json:"command" yaml:"command"`
	Flavor  Flavor          `json:"flavor" yaml:"flavor"`
	MaxHops int             `json:"max_hops" yaml:"max_hops"`
	Timeout config.Duration `json:"timeout" yaml:"timeout"`
}

func (c *Config) Validate() error {
	if c.Flavor == "" {
		c.Flavor = FlavorUnix
		if runtime.GOOS == "windows" {
			c.Flavor = FlavorWindows
		}
	}

	if c.Command == "" {
		c.Command = "traceroute"
		if c.Flavor == FlavorWindows {
			c.Command = "tracert"
		}
	}

	if c.MaxHops <= 0 {
		c.MaxHops = defaultMaxHops
	}

	if c.Timeout <= 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	return nil
}

func (c *Config) args(target string) []string {
	timeout := time.Duration(c.Timeout)
	hops := strconv.Itoa(c.MaxHops)

	if c.Flavor == FlavorWindows {
		return []string{"-d", "-h", hops, "-w", strconv.Itoa(int(timeout.Milliseconds())), target}
	}

	secs := int(timeout.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}

	return []string{"-n", "-m", hops, "-w", strconv.Itoa(secs), "-q", "3", target}
}
