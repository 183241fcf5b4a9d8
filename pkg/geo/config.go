package geo

import (
	"fmt"
	"log"
)

const defaultRequestsPerMinute = 45

// Provider names a geo data source.
type Provider string

const (
	ProviderIPAPI   Provider = "ip-api"
	ProviderMaxMind Provider = "maxmind"
	ProviderNone    Provider = "none"
)

// Config selects and configures the geo providers. Providers are consulted
// in order.
type Config struct {
	Providers         []Provider `json:"providers" yaml:"providers"`
	IPAPIURL          string     `json:"ip_api_url" yaml:"ip_api_url"`
	RequestsPerMinute int        `json:"requests_per_minute" yaml:"requests_per_minute"`
	CityDB            string     `json:"city_db" yaml:"city_db"`
	ASNDB             string     `json:"asn_db" yaml:"asn_db"`
	CacheSize         int        `json:"cache_size" yaml:"cache_size"`
}

func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		c.Providers = []Provider{ProviderIPAPI}
	}

	for _, p := range c.Providers {
		switch p {
		case ProviderIPAPI, ProviderMaxMind, ProviderNone:
		default:
			return fmt.Errorf("%w: %q", errUnknownSource, p)
		}
	}

	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = defaultRequestsPerMinute
	}

	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}

	return nil
}

// New builds the lookup chain described by cfg. A nil Lookup means geo
// enrichment is disabled. The returned close function releases any opened
// databases.
func New(cfg *Config) (Lookup, func() error, error) {
	var (
		chain   Chain
		closers []func() error
	)

	closeAll := func() error {
		var firstErr error

		for _, c := range closers {
			if err := c(); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		return firstErr
	}

	for _, p := range cfg.Providers {
		switch p {
		case ProviderIPAPI:
			chain = append(chain, NewHTTPLookup(cfg.IPAPIURL, cfg.RequestsPerMinute, nil))
		case ProviderMaxMind:
			mm, err := OpenMaxMind(cfg.CityDB, cfg.ASNDB)
			if err != nil {
				_ = closeAll()

				return nil, nil, err
			}

			log.Printf("Using MaxMind databases city=%q asn=%q", cfg.CityDB, cfg.ASNDB)

			chain = append(chain, mm)
			closers = append(closers, mm.Close)
		case ProviderNone:
		}
	}

	if len(chain) == 0 {
		return nil, closeAll, nil
	}

	if len(chain) == 1 {
		return chain[0], closeAll, nil
	}

	return chain, closeAll, nil
}
