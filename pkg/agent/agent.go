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

// Package agent runs health evaluations on an interval and publishes the
// results.
package agent

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/netdiag/pkg/history"
	"github.com/carverauto/netdiag/pkg/metrics"
	"github.com/carverauto/netdiag/pkg/models"
)

const saveTimeout = 5 * time.Second

// Agent evaluates network health periodically. Reports go to an in-memory
// buffer, the Prometheus exporter and, when configured, the history store.
type Agent struct {
	cfg       Config
	evaluator Evaluator
	buffer    metrics.ReportStore
	exporter  *metrics.Exporter
	recorder  history.Recorder

	mu        sync.Mutex
	listeners []func(models.HealthReport)
	lastRun   time.Time

	started  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// Option customizes an Agent.
type Option func(*Agent)

// WithRecorder persists every report and throughput result.
func WithRecorder(r history.Recorder) Option {
	return func(a *Agent) {
		a.recorder = r
	}
}

// WithExporter publishes reports as Prometheus gauges.
func WithExporter(e *metrics.Exporter) Option {
	return func(a *Agent) {
		a.exporter = e
	}
}

func New(cfg Config, evaluator Evaluator, opts ...Option) *Agent {
	a := &Agent{
		cfg:       cfg,
		evaluator: evaluator,
		buffer:    metrics.NewBuffer(cfg.Retention),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// OnReport registers fn to be called after every evaluation.
func (a *Agent) OnReport(fn func(models.HealthReport)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.listeners = append(a.listeners, fn)
}

// Start runs an evaluation immediately and then on every interval until
// ctx is cancelled or Stop is called.
func (a *Agent) Start(ctx context.Context) error {
	if !a.started.CompareAndSwap(false, true) {
		return errAlreadyStarted
	}

	interval := time.Duration(a.cfg.Interval)

	log.Printf("Health agent started with interval %v", interval)

	a.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		case <-ticker.C:
			a.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single evaluation and publishes it.
func (a *Agent) RunOnce(ctx context.Context) models.HealthReport {
	report := a.evaluator.Evaluate(ctx)

	a.buffer.Add(report)

	if a.exporter != nil {
		a.exporter.ObserveHealth(&report)
	}

	if a.recorder != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		if err := a.recorder.SaveHealth(saveCtx, &report); err != nil {
			log.Printf("Failed to save health report: %v", err)
		}

		cancel()
	}

	a.mu.Lock()
	a.lastRun = time.Now()
	listeners := append([]func(models.HealthReport){}, a.listeners...)
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(report)
	}

	log.Printf("Health evaluation completed: score=%d grade=%s", report.Score, report.Grade)

	return report
}

// RecordThroughput publishes a throughput result produced outside the
// agent loop.
func (a *Agent) RecordThroughput(ctx context.Context, result *models.ThroughputResult) {
	if a.exporter != nil {
		a.exporter.ObserveThroughput(result)
	}

	if a.recorder == nil {
		return
	}

	if err := a.recorder.SaveThroughput(ctx, result); err != nil {
		log.Printf("Failed to save throughput result: %v", err)
	}
}

// Latest returns the newest report, or nil before the first evaluation.
func (a *Agent) Latest() *models.HealthReport {
	return a.buffer.Last()
}

// History returns up to limit reports, newest first. Persisted history is
// preferred over the in-memory buffer when a recorder is configured.
func (a *Agent) History(ctx context.Context, limit int) ([]models.HealthReport, error) {
	if a.recorder != nil {
		return a.recorder.RecentHealth(ctx, limit)
	}

	reports := a.buffer.Reports()
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	return reports, nil
}

// LastRun is the completion time of the latest evaluation.
func (a *Agent) LastRun() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.lastRun
}

// Stop ends the loop, prunes persisted history and closes the recorder.
func (a *Agent) Stop(ctx context.Context) error {
	var err error

	a.stopOnce.Do(func() {
		close(a.done)

		if a.recorder == nil {
			return
		}

		if cleanErr := a.recorder.Clean(ctx, time.Duration(a.cfg.HistoryRetention)); cleanErr != nil {
			log.Printf("Failed to clean history: %v", cleanErr)
		}

		err = a.recorder.Close()
	})

	return err
}
