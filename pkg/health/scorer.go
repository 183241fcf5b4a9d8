/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package health pkg/health/scorer.go
package health

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/carverauto/netdiag/pkg/probe"
	"golang.org/x/sync/errgroup"
)

// Scorer evaluates local network health.
type Scorer struct {
	cfg     Config
	prober  probe.Prober
	gateway GatewayResolver
}

func NewScorer(cfg Config, prober probe.Prober, gateway GatewayResolver) *Scorer {
	return &Scorer{cfg: cfg, prober: prober, gateway: gateway}
}

type measurements struct {
	dns       models.LatencyStats
	gateway   string
	gatewayRT models.LatencyStats
	internet  models.LatencyStats
	loss      models.LatencyStats
}

// Evaluate runs the DNS, gateway, internet and packet loss checks
// concurrently and combines them. It never fails: a check that cannot run
// only degrades its own term, and unexpected failures land in Error.
func (s *Scorer) Evaluate(ctx context.Context) models.HealthReport {
	var (
		m    measurements
		mu   sync.Mutex
		errs []error
	)

	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	var g errgroup.Group

	s.spawn(&g, "dns", record, func() {
		m.dns = probe.Measure(ctx, s.prober, s.cfg.DNSTarget, probe.Options{
			Attempts: s.cfg.DNSAttempts,
			Timeout:  time.Duration(s.cfg.DNSTimeout),
		})
	})

	s.spawn(&g, "gateway", record, func() {
		gw, err := s.gateway.DefaultGateway(ctx)
		if err != nil {
			log.Printf("Failed to resolve default gateway: %v", err)
			record(fmt.Errorf("%w: %w", errNoGateway, err))

			return
		}

		m.gateway = gw
		m.gatewayRT = probe.Measure(ctx, s.prober, gw, probe.Options{
			Attempts: 1,
			Timeout:  time.Duration(s.cfg.GatewayTimeout),
		})
	})

	s.spawn(&g, "internet", record, func() {
		m.internet = probe.Measure(ctx, s.prober, s.cfg.InternetTarget, probe.Options{
			Attempts: 1,
			Timeout:  time.Duration(s.cfg.InternetTimeout),
		})
	})

	s.spawn(&g, "loss", record, func() {
		m.loss = probe.Measure(ctx, s.prober, s.cfg.InternetTarget, probe.Options{
			Attempts: s.cfg.LossProbes,
			Timeout:  time.Duration(s.cfg.LossTimeout),
		})
	})

	_ = g.Wait()

	report := s.combine(&m)

	if len(errs) > 0 {
		report.Error = errors.Join(errs...).Error()
	}

	return report
}

// spawn runs fn on g, turning a panic into a recorded error.
func (*Scorer) spawn(g *errgroup.Group, name string, record func(error), fn func()) {
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Health check %s panicked: %v", name, r)
				record(fmt.Errorf("%w: %s: %v", errPanic, name, r))
			}
		}()

		fn()

		return nil
	})
}

func (s *Scorer) combine(m *measurements) models.HealthReport {
	report := models.HealthReport{
		DNSLatencyMs:      latencyOrUnavailable(m.dns),
		Gateway:           m.gateway,
		GatewayReachable:  m.gatewayRT.SuccessCount > 0,
		GatewayLatencyMs:  latencyOrUnavailable(m.gatewayRT),
		InternetReachable: m.internet.SuccessCount > 0,
		InternetLatencyMs: latencyOrUnavailable(m.internet),
		PacketLossPct:     100,
		Timestamp:         time.Now(),
	}

	if m.loss.TotalCount > 0 {
		report.PacketLossPct = m.loss.LossPct
	}

	report.DNSScore = DNSScore(report.DNSLatencyMs, s.cfg.DNSTiers, s.cfg.floorScore())
	report.Score = Composite(report.DNSScore, report.GatewayReachable, report.InternetReachable,
		report.PacketLossPct, *s.cfg.Weights)
	report.Grade = Grade(report.Score)

	return report
}

func latencyOrUnavailable(stats models.LatencyStats) float64 {
	if !stats.Available() {
		return models.Unavailable
	}

	return stats.AvgMs
}
