package speedtest

import (
	"fmt"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
)

const (
	defaultBufferSize       = 80 * 1024
	defaultUploadBytes      = 2_000_000
	defaultProgressInterval = 200 * time.Millisecond
	defaultTimeout          = 60 * time.Second
	defaultUploadURL        = "https://httpbin.org/post"
)

// Server is a bulk download endpoint.
type Server struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// DefaultServers are tried in order.
var DefaultServers = []Server{
	{ID: "cloudflare", Name: "Cloudflare", URL: "https://speed.cloudflare.com/__down?bytes=25000000"},
	{ID: "ovh", Name: "OVH", URL: "https://proof.ovh.net/files/10Mb.dat"},
	{ID: "hetzner", Name: "Hetzner", URL: "https://speed.hetzner.de/10MB.bin"},
}

// Config configures the throughput meter.
type Config struct {
	Servers     []Server `json:"servers" yaml:"servers"`
	UploadURL   string   `json:"upload_url" yaml:"upload_url"`
	UploadBytes int      `json:"upload_bytes" yaml:"upload_bytes"`
	BufferSize  int      `json:"buffer_size" yaml:"buffer_size"`
	// ProgressInterval is the minimum spacing between progress samples,
	// never below 200ms.
	ProgressInterval config.Duration `json:"progress_interval" yaml:"progress_interval"`
	// Timeout bounds a single server attempt.
	Timeout config.Duration `json:"timeout" yaml:"timeout"`
}

func (c *Config) Validate() error {
	if len(c.Servers) == 0 {
		c.Servers = DefaultServers
	}

	for i, s := range c.Servers {
		if s.URL == "" {
			return fmt.Errorf("%w: server %d has no URL", errNoServers, i)
		}

		if s.ID == "" {
			c.Servers[i].ID = fmt.Sprintf("server-%d", i+1)
		}
	}

	if c.UploadURL == "" {
		c.UploadURL = defaultUploadURL
	}

	if c.UploadBytes <= 0 {
		c.UploadBytes = defaultUploadBytes
	}

	if c.BufferSize <= 0 {
		c.BufferSize = defaultBufferSize
	}

	if time.Duration(c.ProgressInterval) < defaultProgressInterval {
		c.ProgressInterval = config.Duration(defaultProgressInterval)
	}

	if c.Timeout <= 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	return nil
}
