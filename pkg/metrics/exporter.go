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

// Package metrics keeps recent health reports and exports them to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/netdiag/pkg/models"
)

const namespace = "netdiag"

// Exporter publishes the latest diagnostic results as Prometheus gauges on
// its own registry.
type Exporter struct {
	registry *prometheus.Registry

	score             prometheus.Gauge
	dnsLatency        prometheus.Gauge
	gatewayReachable  prometheus.Gauge
	gatewayLatency    prometheus.Gauge
	internetReachable prometheus.Gauge
	internetLatency   prometheus.Gauge
	packetLoss        prometheus.Gauge
	evaluations       *prometheus.CounterVec
	throughput        *prometheus.GaugeVec
	transfers         *prometheus.CounterVec
}

func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	return &Exporter{
		registry:          reg,
		score:             gauge("health_score", "Composite network health score (0-100)."),
		dnsLatency:        gauge("dns_latency_ms", "Average DNS target round trip time, -1 when unavailable."),
		gatewayReachable:  gauge("gateway_reachable", "1 when the default gateway answered."),
		gatewayLatency:    gauge("gateway_latency_ms", "Gateway round trip time, -1 when unavailable."),
		internetReachable: gauge("internet_reachable", "1 when the internet target answered."),
		internetLatency:   gauge("internet_latency_ms", "Internet target round trip time, -1 when unavailable."),
		packetLoss:        gauge("packet_loss_pct", "Packet loss to the internet target in percent."),
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_evaluations_total",
			Help:      "Health evaluations by grade.",
		}, []string{"grade"}),
		throughput: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throughput_mbps",
			Help:      "Rate of the last completed transfer.",
		}, []string{"direction"}),
		transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Throughput runs by direction and outcome.",
		}, []string{"direction", "outcome"}),
	}
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}

	return 0
}

// ObserveHealth records one health report.
func (e *Exporter) ObserveHealth(r *models.HealthReport) {
	e.score.Set(float64(r.Score))
	e.dnsLatency.Set(r.DNSLatencyMs)
	e.gatewayReachable.Set(boolGauge(r.GatewayReachable))
	e.gatewayLatency.Set(r.GatewayLatencyMs)
	e.internetReachable.Set(boolGauge(r.InternetReachable))
	e.internetLatency.Set(r.InternetLatencyMs)
	e.packetLoss.Set(r.PacketLossPct)
	e.evaluations.WithLabelValues(r.Grade).Inc()
}

// ObserveThroughput records one throughput run. The rate gauge only moves
// for completed runs.
func (e *Exporter) ObserveThroughput(r *models.ThroughputResult) {
	e.transfers.WithLabelValues(string(r.Direction), string(r.Outcome)).Inc()

	if r.Outcome == models.OutcomeCompleted {
		e.throughput.WithLabelValues(string(r.Direction)).Set(r.RateMbps)
	}
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
