package publicip

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
	"github.com/carverauto/netdiag/pkg/geo"
	"github.com/carverauto/netdiag/pkg/models"
)

var defaultSTUNServers = []string{
	"stun.l.google.com:19302",
	"stun1.l.google.com:19302",
}

const defaultTimeout = 3 * time.Second

// Config selects the discovery servers.
type Config struct {
	STUNServers []string        `json:"stun_servers" yaml:"stun_servers"`
	EchoURLs    []string        `json:"echo_urls" yaml:"echo_urls"`
	Timeout     config.Duration `json:"timeout" yaml:"timeout"`
	DisableSTUN bool            `json:"disable_stun" yaml:"disable_stun"`
}

func (c *Config) Validate() error {
	if len(c.STUNServers) == 0 {
		c.STUNServers = defaultSTUNServers
	}

	if len(c.EchoURLs) == 0 {
		c.EchoURLs = DefaultEchoURLs
	}

	if c.Timeout <= 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	return nil
}

// Chain tries each resolver in order and returns the first answer.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context) (models.PublicAddress, error) {
	if len(c) == 0 {
		return models.PublicAddress{}, errNoServers
	}

	var lastErr error

	for _, r := range c {
		addr, err := r.Resolve(ctx)
		if err == nil {
			return addr, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return models.PublicAddress{}, fmt.Errorf("%w: %w", errAllFailed, lastErr)
}

// Detector resolves the public address and annotates it with geo data.
type Detector struct {
	resolver Resolver
	lookup   geo.Lookup
}

// NewDetector returns a detector. lookup may be nil.
func NewDetector(resolver Resolver, lookup geo.Lookup) *Detector {
	return &Detector{resolver: resolver, lookup: lookup}
}

// New builds the STUN then HTTP resolver chain described by cfg.
func New(cfg *Config, lookup geo.Lookup) *Detector {
	var chain Chain

	if !cfg.DisableSTUN {
		chain = append(chain, NewSTUNResolver(cfg.STUNServers, time.Duration(cfg.Timeout)))
	}

	chain = append(chain, NewHTTPResolver(cfg.EchoURLs, &http.Client{Timeout: time.Duration(cfg.Timeout)}))

	return NewDetector(chain, lookup)
}

func (d *Detector) Detect(ctx context.Context) (models.PublicAddress, error) {
	addr, err := d.resolver.Resolve(ctx)
	if err != nil {
		return models.PublicAddress{}, err
	}

	if d.lookup == nil {
		return addr, nil
	}

	info, err := d.lookup.Lookup(ctx, addr.IP)
	if err != nil {
		log.Printf("Failed to look up location of %s: %v", addr.IP, err)

		return addr, nil
	}

	addr.Geo = info

	return addr, nil
}
