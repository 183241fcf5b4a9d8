package agent

import (
	"fmt"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
	"github.com/carverauto/netdiag/pkg/metrics"
)

const (
	defaultInterval         = 5 * time.Minute
	defaultHistoryRetention = 7 * 24 * time.Hour
	defaultListenAddr       = ":8080"
	defaultGRPCAddr         = ":50051"
	minInterval             = time.Second
)

// Config controls the periodic health agent and its listeners.
type Config struct {
	Interval         config.Duration `json:"interval" yaml:"interval"`
	Retention        int             `json:"retention" yaml:"retention"`
	HistoryPath      string          `json:"history_path" yaml:"history_path"`
	HistoryRetention config.Duration `json:"history_retention" yaml:"history_retention"`
	ListenAddr       string          `json:"listen_addr" yaml:"listen_addr"`
	GRPCAddr         string          `json:"grpc_addr" yaml:"grpc_addr"`
}

func (c *Config) Validate() error {
	if c.Interval == 0 {
		c.Interval = config.Duration(defaultInterval)
	}

	if time.Duration(c.Interval) < minInterval {
		return fmt.Errorf("%w: interval %v is below %v", errInvalidConfig, time.Duration(c.Interval), minInterval)
	}

	if c.Retention <= 0 {
		c.Retention = metrics.DefaultRetention
	}

	if c.HistoryRetention <= 0 {
		c.HistoryRetention = config.Duration(defaultHistoryRetention)
	}

	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.GRPCAddr == "" {
		c.GRPCAddr = defaultGRPCAddr
	}

	return nil
}
