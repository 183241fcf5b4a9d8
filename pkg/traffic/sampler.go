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

// Package traffic samples interface byte counters and turns them into rates.
package traffic

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/carverauto/netdiag/pkg/models"
)

const DefaultInterval = time.Second

// HostCounters reads counters from the operating system.
type HostCounters struct{}

func (HostCounters) IOCounters(ctx context.Context) ([]psnet.IOCountersStat, error) {
	return psnet.IOCountersWithContext(ctx, true)
}

// Sampler takes two counter snapshots an interval apart.
type Sampler struct {
	counters Counters
	interval time.Duration
	now      func() time.Time
}

func NewSampler(counters Counters, interval time.Duration) *Sampler {
	if counters == nil {
		counters = HostCounters{}
	}

	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Sampler{counters: counters, interval: interval, now: time.Now}
}

// Sample blocks for one interval and reports the rates observed during it.
func (s *Sampler) Sample(ctx context.Context) (models.TrafficReport, error) {
	prev, err := s.counters.IOCounters(ctx)
	if err != nil {
		return models.TrafficReport{}, fmt.Errorf("%w: %w", errCounters, err)
	}

	start := s.now()

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return models.TrafficReport{}, ctx.Err()
	case <-timer.C:
	}

	cur, err := s.counters.IOCounters(ctx)
	if err != nil {
		return models.TrafficReport{}, fmt.Errorf("%w: %w", errCounters, err)
	}

	end := s.now()

	return Rates(prev, cur, end.Sub(start), end), nil
}

// IsLoopback reports whether an interface name denotes a loopback device.
func IsLoopback(name string) bool {
	return name == "lo" || name == "lo0" || strings.HasPrefix(strings.ToLower(name), "loopback")
}

// Rates converts two counter snapshots into per-interface rates. Interfaces
// missing from either snapshot are skipped and counter resets read as zero.
func Rates(prev, cur []psnet.IOCountersStat, elapsed time.Duration, at time.Time) models.TrafficReport {
	report := models.TrafficReport{IntervalSeconds: elapsed.Seconds()}

	before := make(map[string]psnet.IOCountersStat, len(prev))
	for _, c := range prev {
		before[c.Name] = c
	}

	for _, c := range cur {
		if IsLoopback(c.Name) {
			continue
		}

		p, ok := before[c.Name]
		if !ok {
			continue
		}

		rx, tx := delta(p.BytesRecv, c.BytesRecv), delta(p.BytesSent, c.BytesSent)

		rate := models.InterfaceRate{
			Name:      c.Name,
			RxMbps:    models.RateMbps(int64(rx), elapsed),
			TxMbps:    models.RateMbps(int64(tx), elapsed),
			RxBytes:   c.BytesRecv,
			TxBytes:   c.BytesSent,
			SampledAt: at,
		}

		report.TotalRxMbps += rate.RxMbps
		report.TotalTxMbps += rate.TxMbps
		report.Interfaces = append(report.Interfaces, rate)
	}

	sort.Slice(report.Interfaces, func(i, j int) bool {
		return report.Interfaces[i].Name < report.Interfaces[j].Name
	})

	return report
}

func delta(before, after uint64) uint64 {
	if after < before {
		return 0
	}

	return after - before
}
