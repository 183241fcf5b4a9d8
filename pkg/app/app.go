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

// Package app wires the diagnostic components together from a Config.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/carverauto/netdiag/pkg/agent"
	"github.com/carverauto/netdiag/pkg/api"
	"github.com/carverauto/netdiag/pkg/execx"
	"github.com/carverauto/netdiag/pkg/geo"
	"github.com/carverauto/netdiag/pkg/health"
	"github.com/carverauto/netdiag/pkg/history"
	"github.com/carverauto/netdiag/pkg/metrics"
	"github.com/carverauto/netdiag/pkg/mtu"
	"github.com/carverauto/netdiag/pkg/probe"
	"github.com/carverauto/netdiag/pkg/publicip"
	"github.com/carverauto/netdiag/pkg/speedtest"
	"github.com/carverauto/netdiag/pkg/traceroute"
	"github.com/carverauto/netdiag/pkg/traffic"
	"github.com/carverauto/netdiag/pkg/wifi"
)

// App holds the components built from one Config.
type App struct {
	Config   *Config
	Runner   execx.Runner
	Prober   probe.Prober
	Geo      geo.Lookup
	Scorer   *health.Scorer
	Meter    *speedtest.Meter
	MTU      *mtu.Discoverer
	Wifi     *wifi.Analyzer
	PublicIP *publicip.Detector
	Traffic  *traffic.Sampler
	Exporter *metrics.Exporter

	closeGeo func() error
}

// New builds every component. cfg must already be validated.
func New(cfg *Config) (*App, error) {
	runner := execx.NewOSRunner()

	lookup, closeGeo, err := geo.New(&cfg.Geo)
	if err != nil {
		return nil, fmt.Errorf("geo: %w", err)
	}

	prober := probe.New(&cfg.Probe)

	return &App{
		Config:   cfg,
		Runner:   runner,
		Prober:   prober,
		Geo:      lookup,
		Scorer:   health.NewScorer(cfg.Health, prober, health.DefaultGatewayResolver(runner)),
		Meter:    speedtest.NewMeter(cfg.Speed, nil),
		MTU:      mtu.NewDiscoverer(cfg.MTU, mtu.NewPingProber(runner, time.Duration(cfg.MTU.Timeout))),
		Wifi:     wifi.NewAnalyzer(cfg.Wifi.Scanner(runner)),
		PublicIP: publicip.New(&cfg.PublicIP, lookup),
		Traffic:  cfg.Traffic.Sampler(),
		Exporter: metrics.NewExporter(),
		closeGeo: closeGeo,
	}, nil
}

// NewTracer returns a traceroute engine with its own geo cache.
func (a *App) NewTracer() *traceroute.Engine {
	return traceroute.NewEngine(a.Config.Trace, a.Runner, a.Geo,
		traceroute.WithCache(geo.NewCache(a.Config.Geo.CacheSize)))
}

// NewAgent builds the periodic health agent, opening the history database
// when one is configured.
func (a *App) NewAgent() (*agent.Agent, error) {
	opts := []agent.Option{agent.WithExporter(a.Exporter)}

	if path := a.Config.Agent.HistoryPath; path != "" {
		store, err := history.Open(path)
		if err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}

		log.Printf("Recording history to %s", path)

		opts = append(opts, agent.WithRecorder(store))
	}

	return agent.New(a.Config.Agent, a.Scorer, opts...), nil
}

// APIDeps connects the HTTP API to the components and to ag.
func (a *App) APIDeps(ag *agent.Agent) api.Deps {
	return api.Deps{
		Health:     ag,
		Resolvers:  a.Scorer,
		MTU:        a.MTU,
		Wifi:       a.Wifi,
		PublicIP:   a.PublicIP,
		Traffic:    a.Traffic,
		NewTracer:  func() api.Tracer { return a.NewTracer() },
		Speed:      a.Meter,
		Throughput: ag,
		Metrics:    a.Exporter.Handler(),
	}
}

// Close releases the geo databases.
func (a *App) Close() error {
	if a.closeGeo == nil {
		return nil
	}

	return a.closeGeo()
}
