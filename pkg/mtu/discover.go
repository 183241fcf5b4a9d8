// Package mtu finds the largest packet that crosses the path to a target
// without fragmentation.
package mtu

import (
	"context"

	"github.com/carverauto/netdiag/pkg/models"
)

// Discoverer runs a binary search over packet sizes using a FragmentProber.
type Discoverer struct {
	cfg    Config
	prober FragmentProber
}

func NewDiscoverer(cfg Config, prober FragmentProber) *Discoverer {
	return &Discoverer{cfg: cfg, prober: prober}
}

// Discover searches [Low, High] for the largest packet size whose payload
// (size minus header overhead) is delivered with don't-fragment set. When no
// probe succeeds the configured fallback is returned unconfirmed.
func (d *Discoverer) Discover(ctx context.Context) models.MTUResult {
	return d.DiscoverTarget(ctx, d.cfg.Target)
}

// DiscoverTarget is Discover against an explicit target.
func (d *Discoverer) DiscoverTarget(ctx context.Context, target string) models.MTUResult {
	result := models.MTUResult{Target: target, MTU: d.cfg.Fallback}

	low, high := d.cfg.Low, d.cfg.High

	for low <= high {
		if ctx.Err() != nil {
			break
		}

		mid := low + (high-low)/2
		outcome := d.prober.ProbeDF(ctx, target, mid-d.cfg.HeaderOverhead)
		result.Probes++

		action := d.cfg.OnFailure

		switch outcome {
		case OutcomeSuccess:
			result.MTU = mid
			result.Confirmed = true
			low = mid + 1

			continue
		case OutcomeFragmented:
			action = d.cfg.OnFragmentation
		case OutcomeFailed:
		}

		switch action {
		case ActionGrow:
			low = mid + 1
		case ActionStop:
			return result
		default:
			high = mid - 1
		}
	}

	return result
}
