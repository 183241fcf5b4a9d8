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

// Package history provides SQLite persistence for health reports and
// throughput results.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/carverauto/netdiag/pkg/models"
)

const (
	defaultLimit = 100

	createTablesSQL = `
	CREATE TABLE IF NOT EXISTS health_reports (
		id TEXT PRIMARY KEY,
		timestamp TIMESTAMP NOT NULL,
		dns_latency_ms REAL NOT NULL,
		dns_score INTEGER NOT NULL,
		gateway TEXT NOT NULL DEFAULT '',
		gateway_reachable BOOLEAN NOT NULL DEFAULT 0,
		gateway_latency_ms REAL NOT NULL,
		internet_reachable BOOLEAN NOT NULL DEFAULT 0,
		internet_latency_ms REAL NOT NULL,
		packet_loss_pct REAL NOT NULL,
		score INTEGER NOT NULL,
		grade TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS throughput_results (
		run_id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		direction TEXT NOT NULL,
		server_id TEXT NOT NULL DEFAULT '',
		server_name TEXT NOT NULL DEFAULT '',
		bytes_transferred INTEGER NOT NULL,
		elapsed_seconds REAL NOT NULL,
		rate_mbps REAL NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_health_reports_time
		ON health_reports(timestamp);
	CREATE INDEX IF NOT EXISTS idx_throughput_results_time
		ON throughput_results(started_at);
	`
)

// Store is a Recorder backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and initializes the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedOpenDB, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%w: %w", errFailedToEnableWAL, err)
	}

	if _, err := db.Exec(createTablesSQL); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%w: %w", errFailedToInit, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveHealth stores report, assigning an id when it has none.
func (s *Store) SaveHealth(ctx context.Context, report *models.HealthReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	const insertSQL = `
		INSERT INTO health_reports
			(id, timestamp, dns_latency_ms, dns_score, gateway, gateway_reachable,
			 gateway_latency_ms, internet_reachable, internet_latency_ms,
			 packet_loss_pct, score, grade, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, insertSQL,
		report.ID,
		report.Timestamp.UTC(),
		report.DNSLatencyMs,
		report.DNSScore,
		report.Gateway,
		report.GatewayReachable,
		report.GatewayLatencyMs,
		report.InternetReachable,
		report.InternetLatencyMs,
		report.PacketLossPct,
		report.Score,
		report.Grade,
		report.Error)
	if err != nil {
		return fmt.Errorf("%w health report: %w", errFailedToInsert, err)
	}

	return nil
}

// SaveThroughput stores result, assigning a run id when it has none.
func (s *Store) SaveThroughput(ctx context.Context, result *models.ThroughputResult) error {
	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}

	const insertSQL = `
		INSERT INTO throughput_results
			(run_id, started_at, direction, server_id, server_name,
			 bytes_transferred, elapsed_seconds, rate_mbps, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, insertSQL,
		result.RunID,
		result.StartedAt.UTC(),
		string(result.Direction),
		result.ServerID,
		result.ServerName,
		result.BytesTransferred,
		result.ElapsedSeconds,
		result.RateMbps,
		string(result.Outcome),
		result.Error)
	if err != nil {
		return fmt.Errorf("%w throughput result: %w", errFailedToInsert, err)
	}

	return nil
}

// RecentHealth returns up to limit reports, newest first.
func (s *Store) RecentHealth(ctx context.Context, limit int) ([]models.HealthReport, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	const querySQL = `
		SELECT id, timestamp, dns_latency_ms, dns_score, gateway, gateway_reachable,
			gateway_latency_ms, internet_reachable, internet_latency_ms,
			packet_loss_pct, score, grade, error
		FROM health_reports
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, querySQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%w health reports: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var reports []models.HealthReport

	for rows.Next() {
		var r models.HealthReport

		if err := rows.Scan(
			&r.ID,
			&r.Timestamp,
			&r.DNSLatencyMs,
			&r.DNSScore,
			&r.Gateway,
			&r.GatewayReachable,
			&r.GatewayLatencyMs,
			&r.InternetReachable,
			&r.InternetLatencyMs,
			&r.PacketLossPct,
			&r.Score,
			&r.Grade,
			&r.Error,
		); err != nil {
			return nil, fmt.Errorf("%w health report: %w", errFailedToScan, err)
		}

		reports = append(reports, r)
	}

	return reports, rows.Err()
}

// RecentThroughput returns up to limit results, newest first.
func (s *Store) RecentThroughput(ctx context.Context, limit int) ([]models.ThroughputResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	const querySQL = `
		SELECT run_id, started_at, direction, server_id, server_name,
			bytes_transferred, elapsed_seconds, rate_mbps, outcome, error
		FROM throughput_results
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, querySQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%w throughput results: %w", errFailedToQuery, err)
	}
	defer closeRows(rows)

	var results []models.ThroughputResult

	for rows.Next() {
		var (
			r                  models.ThroughputResult
			direction, outcome string
		)

		if err := rows.Scan(
			&r.RunID,
			&r.StartedAt,
			&direction,
			&r.ServerID,
			&r.ServerName,
			&r.BytesTransferred,
			&r.ElapsedSeconds,
			&r.RateMbps,
			&outcome,
			&r.Error,
		); err != nil {
			return nil, fmt.Errorf("%w throughput result: %w", errFailedToScan, err)
		}

		r.Direction = models.TransferDirection(direction)
		r.Outcome = models.TransferOutcome(outcome)
		results = append(results, r)
	}

	return results, rows.Err()
}

// Clean deletes records older than retention.
func (s *Store) Clean(ctx context.Context, retention time.Duration) (err error) {
	cutoff := time.Now().Add(-retention).UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", errFailedToBeginTx, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Failed to rollback: %v", rbErr)
			}

			return
		}

		err = tx.Commit()
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM health_reports WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("%w health reports: %w", errFailedToClean, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM throughput_results WHERE started_at < ?", cutoff); err != nil {
		return fmt.Errorf("%w throughput results: %w", errFailedToClean, err)
	}

	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("Failed to close rows: %v", err)
	}
}
