package mtu

import (
	"fmt"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
)

const (
	defaultTarget   = "8.8.8.8"
	defaultLow      = 1200
	defaultHigh     = 1500
	defaultOverhead = 28 // IPv4 + ICMP headers
	defaultTimeout  = 2 * time.Second
)

// Config configures a path MTU search.
type Config struct {
	Target string `json:"target" yaml:"target"`
	Low    int    `json:"low" yaml:"low"`
	High   int    `json:"high" yaml:"high"`
	// Fallback is reported when no probe succeeds.
	Fallback        int             `json:"fallback" yaml:"fallback"`
	HeaderOverhead  int             `json:"header_overhead" yaml:"header_overhead"`
	OnFragmentation Action          `json:"on_fragmentation" yaml:"on_fragmentation"`
	OnFailure       Action          `json:"on_failure" yaml:"on_failure"`
	Timeout         config.Duration `json:"timeout" yaml:"timeout"`
}

func (c *Config) Validate() error {
	if c.Target == "" {
		c.Target = defaultTarget
	}

	if c.Low <= 0 {
		c.Low = defaultLow
	}

	if c.High <= 0 {
		c.High = defaultHigh
	}

	if c.Low > c.High {
		return fmt.Errorf("%w: low %d > high %d", errInvalidRange, c.Low, c.High)
	}

	if c.Fallback <= 0 {
		c.Fallback = defaultHigh
	}

	if c.HeaderOverhead <= 0 {
		c.HeaderOverhead = defaultOverhead
	}

	if c.Low <= c.HeaderOverhead {
		return fmt.Errorf("%w: low %d does not exceed header overhead %d", errInvalidRange, c.Low, c.HeaderOverhead)
	}

	var err error

	if c.OnFragmentation, err = validAction(c.OnFragmentation); err != nil {
		return err
	}

	if c.OnFailure, err = validAction(c.OnFailure); err != nil {
		return err
	}

	if c.Timeout <= 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	return nil
}

func validAction(a Action) (Action, error) {
	switch a {
	case "":
		return ActionShrink, nil
	case ActionShrink, ActionGrow, ActionStop:
		return a, nil
	}

	return "", fmt.Errorf("%w: %q", errInvalidAction, a)
}
