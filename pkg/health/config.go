package health

import (
	"fmt"
	"sort"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
)

const (
	defaultDNSTarget       = "8.8.8.8"
	defaultInternetTarget  = "8.8.8.8"
	defaultDNSAttempts     = 3
	defaultDNSTimeout      = 2 * time.Second
	defaultGatewayTimeout  = 2 * time.Second
	defaultInternetTimeout = 3 * time.Second
	defaultLossProbes      = 10
	defaultLossTimeout     = time.Second
	defaultFloorScore      = 20
)

// Weights are the contribution of each sub-measurement to the overall score.
type Weights struct {
	DNS      float64 `json:"dns" yaml:"dns"`
	Gateway  float64 `json:"gateway" yaml:"gateway"`
	Internet float64 `json:"internet" yaml:"internet"`
	Loss     float64 `json:"loss" yaml:"loss"`
}

// DefaultWeights sum to one.
var DefaultWeights = Weights{DNS: 0.3, Gateway: 0.2, Internet: 0.3, Loss: 0.2}

func (w Weights) sum() float64 {
	return w.DNS + w.Gateway + w.Internet + w.Loss
}

// Tier maps DNS latencies strictly below BelowMs to Score.
type Tier struct {
	BelowMs float64 `json:"below_ms" yaml:"below_ms"`
	Score   int     `json:"score" yaml:"score"`
}

// DefaultDNSTiers score resolver latency.
var DefaultDNSTiers = []Tier{
	{BelowMs: 30, Score: 100},
	{BelowMs: 50, Score: 80},
	{BelowMs: 100, Score: 60},
	{BelowMs: 200, Score: 40},
}

// Resolver is a DNS resolver to benchmark.
type Resolver struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

// DefaultResolvers are the public resolvers compared by BenchmarkResolvers.
var DefaultResolvers = []Resolver{
	{Name: "Cloudflare", Address: "1.1.1.1"},
	{Name: "Cloudflare Secondary", Address: "1.0.0.1"},
	{Name: "Google", Address: "8.8.8.8"},
	{Name: "Google Secondary", Address: "8.8.4.4"},
	{Name: "Quad9", Address: "9.9.9.9"},
	{Name: "OpenDNS", Address: "208.67.222.222"},
	{Name: "AdGuard", Address: "94.140.14.14"},
}

// Config configures the health scorer.
type Config struct {
	DNSTarget       string          `json:"dns_target" yaml:"dns_target"`
	InternetTarget  string          `json:"internet_target" yaml:"internet_target"`
	DNSAttempts     int             `json:"dns_attempts" yaml:"dns_attempts"`
	DNSTimeout      config.Duration `json:"dns_timeout" yaml:"dns_timeout"`
	GatewayTimeout  config.Duration `json:"gateway_timeout" yaml:"gateway_timeout"`
	InternetTimeout config.Duration `json:"internet_timeout" yaml:"internet_timeout"`
	LossProbes      int             `json:"loss_probes" yaml:"loss_probes"`
	LossTimeout     config.Duration `json:"loss_timeout" yaml:"loss_timeout"`
	Weights         *Weights        `json:"weights,omitempty" yaml:"weights,omitempty"`
	DNSTiers        []Tier          `json:"dns_tiers,omitempty" yaml:"dns_tiers,omitempty"`
	// FloorScore is the DNS score when latency is above every tier. Unset
	// means 20; an explicit 0 is kept.
	FloorScore *int       `json:"floor_score,omitempty" yaml:"floor_score,omitempty"`
	Resolvers  []Resolver `json:"resolvers,omitempty" yaml:"resolvers,omitempty"`
}

func (c *Config) Validate() error {
	if c.DNSTarget == "" {
		c.DNSTarget = defaultDNSTarget
	}

	if c.InternetTarget == "" {
		c.InternetTarget = defaultInternetTarget
	}

	if c.DNSAttempts <= 0 {
		c.DNSAttempts = defaultDNSAttempts
	}

	if c.DNSTimeout <= 0 {
		c.DNSTimeout = config.Duration(defaultDNSTimeout)
	}

	if c.GatewayTimeout <= 0 {
		c.GatewayTimeout = config.Duration(defaultGatewayTimeout)
	}

	if c.InternetTimeout <= 0 {
		c.InternetTimeout = config.Duration(defaultInternetTimeout)
	}

	if c.LossProbes <= 0 {
		c.LossProbes = defaultLossProbes
	}

	if c.LossTimeout <= 0 {
		c.LossTimeout = config.Duration(defaultLossTimeout)
	}

	if c.Weights == nil {
		w := DefaultWeights
		c.Weights = &w
	}

	w := c.Weights
	if w.DNS < 0 || w.Gateway < 0 || w.Internet < 0 || w.Loss < 0 || w.sum() <= 0 {
		return fmt.Errorf("%w: %+v", errInvalidWeights, *w)
	}

	if len(c.DNSTiers) == 0 {
		c.DNSTiers = DefaultDNSTiers
	}

	if !sort.SliceIsSorted(c.DNSTiers, func(i, j int) bool { return c.DNSTiers[i].BelowMs < c.DNSTiers[j].BelowMs }) {
		return errInvalidTiers
	}

	if c.FloorScore == nil {
		floor := defaultFloorScore
		c.FloorScore = &floor
	}

	if *c.FloorScore < 0 || *c.FloorScore > 100 {
		return fmt.Errorf("%w: %d", errInvalidFloor, *c.FloorScore)
	}

	if len(c.Resolvers) == 0 {
		c.Resolvers = DefaultResolvers
	}

	return nil
}

func (c *Config) floorScore() int {
	if c.FloorScore == nil {
		return defaultFloorScore
	}

	return *c.FloorScore
}
