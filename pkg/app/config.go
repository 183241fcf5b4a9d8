package app

import (
	"fmt"

	"github.com/carverauto/netdiag/pkg/agent"
	"github.com/carverauto/netdiag/pkg/config"
	"github.com/carverauto/netdiag/pkg/geo"
	"github.com/carverauto/netdiag/pkg/health"
	"github.com/carverauto/netdiag/pkg/mtu"
	"github.com/carverauto/netdiag/pkg/probe"
	"github.com/carverauto/netdiag/pkg/publicip"
	"github.com/carverauto/netdiag/pkg/speedtest"
	"github.com/carverauto/netdiag/pkg/traceroute"
	"github.com/carverauto/netdiag/pkg/traffic"
	"github.com/carverauto/netdiag/pkg/wifi"
)

// Config is the full netdiag configuration file.
type Config struct {
	Probe    probe.Config      `json:"probe" yaml:"probe"`
	Speed    speedtest.Config  `json:"speed" yaml:"speed"`
	MTU      mtu.Config        `json:"mtu" yaml:"mtu"`
	Health   health.Config     `json:"health" yaml:"health"`
	Trace    traceroute.Config `json:"trace" yaml:"trace"`
	Geo      geo.Config        `json:"geo" yaml:"geo"`
	Wifi     wifi.Config       `json:"wifi" yaml:"wifi"`
	PublicIP publicip.Config   `json:"publicip" yaml:"publicip"`
	Traffic  traffic.Config    `json:"traffic" yaml:"traffic"`
	Agent    agent.Config      `json:"agent" yaml:"agent"`
}

// Validate fills defaults in every section.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    config.Validator
	}{
		{"probe", &c.Probe},
		{"speed", &c.Speed},
		{"mtu", &c.MTU},
		{"health", &c.Health},
		{"trace", &c.Trace},
		{"geo", &c.Geo},
		{"wifi", &c.Wifi},
		{"publicip", &c.PublicIP},
		{"traffic", &c.Traffic},
		{"agent", &c.Agent},
	}

	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	return cfg
}

// Load reads path, or returns Default when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	cfg := &Config{}
	if err := config.LoadAndValidate(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
