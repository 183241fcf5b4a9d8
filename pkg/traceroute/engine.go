// Package traceroute runs the platform route tracer and turns its output
// into a stream of geo-enriched hops.
package traceroute

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"log"
	"strings"
	"sync/atomic"

	"github.com/carverauto/netdiag/pkg/execx"
	"github.com/carverauto/netdiag/pkg/geo"
	"github.com/carverauto/netdiag/pkg/models"
)

// Engine traces routes. Each engine owns its geo cache, so repeated public
// addresses are looked up once per engine.
type Engine struct {
	cfg    Config
	runner execx.Runner
	parser LineParser
	lookup geo.Lookup
	cache  *geo.Cache
}

// Option customizes an Engine.
type Option func(*Engine)

// WithParser replaces the default HopParser.
func WithParser(p LineParser) Option {
	return func(e *Engine) { e.parser = p }
}

// WithCache injects the geo cache.
func WithCache(c *geo.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// NewEngine returns an engine. A nil lookup disables geo enrichment.
func NewEngine(cfg Config, runner execx.Runner, lookup geo.Lookup, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		runner: runner,
		parser: HopParser{},
		lookup: lookup,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.cache == nil {
		e.cache = geo.NewCache(geo.DefaultCacheSize)
	}

	return e
}

// CacheStats exposes the engine's geo cache counters.
func (e *Engine) CacheStats() geo.CacheStats {
	return e.cache.Stats()
}

// Trace starts the tracer when iteration begins and yields hops as they are
// printed. Breaking out of the loop kills and reaps the tracer. The returned
// sequence can be iterated once.
func (e *Engine) Trace(ctx context.Context, target string) iter.Seq2[models.TraceHop, error] {
	var used atomic.Bool

	return func(yield func(models.TraceHop, error) bool) {
		if used.Swap(true) {
			yield(models.TraceHop{}, ErrAlreadyConsumed)
			return
		}

		if err := validateTarget(target); err != nil {
			yield(models.TraceHop{}, err)
			return
		}

		stream, err := e.runner.Stream(ctx, e.cfg.Command, e.cfg.args(target)...)
		if err != nil {
			yield(models.TraceHop{}, fmt.Errorf("%w: %w", ErrTracerUnavailable, err))
			return
		}

		defer func() {
			if err := stream.Close(); err != nil {
				log.Printf("Error reaping tracer for %s: %v", target, err)
			}
		}()

		last := 0
		scanner := bufio.NewScanner(stream)

		for scanner.Scan() {
			parsed, ok := e.parser.ParseLine(scanner.Text())
			if !ok {
				continue
			}

			if parsed.Number <= last {
				continue
			}

			last = parsed.Number

			if !yield(e.enrich(ctx, parsed), nil) {
				return
			}
		}

		if ctx.Err() != nil {
			yield(models.TraceHop{}, ctx.Err())
			return
		}

		if err := scanner.Err(); err != nil {
			yield(models.TraceHop{}, err)
		}
	}
}

// Collect runs a trace to completion. Hops produced before a failure are
// returned with the error.
func (e *Engine) Collect(ctx context.Context, target string) ([]models.TraceHop, error) {
	var hops []models.TraceHop

	for hop, err := range e.Trace(ctx, target) {
		if err != nil {
			return hops, err
		}

		hops = append(hops, hop)
	}

	return hops, nil
}

func (e *Engine) enrich(ctx context.Context, parsed ParsedHop) models.TraceHop {
	hop := models.TraceHop{
		Number:    parsed.Number,
		Address:   parsed.Address,
		Samples:   parsed.Samples,
		LatencyMs: models.Unavailable,
		IsTimeout: parsed.Address == "" && parsed.Timeouts > 0,
	}

	if len(parsed.Samples) > 0 {
		var sum float64
		for _, s := range parsed.Samples {
			sum += s
		}

		hop.LatencyMs = sum / float64(len(parsed.Samples))
	}

	if hop.Address == "" {
		return hop
	}

	hop.IsPrivate = geo.IsPrivate(hop.Address)

	if hop.IsPrivate || e.lookup == nil {
		return hop
	}

	info, err := e.cache.GetOrLookup(ctx, hop.Address, e.lookup)
	if err != nil {
		log.Printf("Geo lookup for %s failed: %v", hop.Address, err)
		return hop
	}

	hop.Geo = info

	return hop
}

func validateTarget(target string) error {
	if target == "" || strings.HasPrefix(target, "-") || strings.ContainsAny(target, " \t\r\n") {
		return fmt.Errorf("%w: %q", errInvalidTarget, target)
	}

	return nil
}
