// Package speedtest measures bulk download and upload throughput against
// public HTTP endpoints.
package speedtest

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/google/uuid"
)

// Meter runs throughput measurements.
type Meter struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// NewMeter returns a meter. cfg should already be validated; a nil client
// means http.DefaultClient.
func NewMeter(cfg Config, client *http.Client) *Meter {
	if client == nil {
		client = http.DefaultClient
	}

	return &Meter{
		cfg:    cfg,
		client: client,
		now:    time.Now,
	}
}

// Download measures download throughput. Servers are tried in order and the
// first complete transfer is the result.
func (m *Meter) Download(ctx context.Context) *Run {
	run := newRun()

	go func() {
		result, err := m.download(ctx, run)
		run.finish(result, err)
	}()

	return run
}

// Upload posts a fixed-size random payload to the upload URL.
func (m *Meter) Upload(ctx context.Context) *Run {
	run := newRun()

	go func() {
		result, err := m.upload(ctx, run)
		run.finish(result, err)
	}()

	return run
}

func (m *Meter) newResult(direction models.TransferDirection) models.ThroughputResult {
	return models.ThroughputResult{
		RunID:     uuid.NewString(),
		Direction: direction,
		StartedAt: m.now(),
	}
}

func (m *Meter) download(ctx context.Context, run *Run) (models.ThroughputResult, error) {
	result := m.newResult(models.DirectionDownload)

	if len(m.cfg.Servers) == 0 {
		return failedResult(result, errNoServers), fmt.Errorf("%w: %w", ErrAllServersFailed, errNoServers)
	}

	var lastErr error

	for _, srv := range m.cfg.Servers {
		if ctx.Err() != nil {
			break
		}

		n, elapsed, err := m.downloadFrom(ctx, srv, run)
		if err == nil {
			result.ServerID = srv.ID
			result.ServerName = srv.Name

			return completedResult(result, n, elapsed), nil
		}

		if errors.Is(ctx.Err(), context.Canceled) {
			break
		}

		log.Printf("Download from %s failed: %v", srv.ID, err)

		lastErr = err
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return cancelledResult(result), ErrCancelled
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}

	return failedResult(result, lastErr), fmt.Errorf("%w: %w", ErrAllServersFailed, lastErr)
}

func (m *Meter) downloadFrom(ctx context.Context, srv Server, run *Run) (int64, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.cfg.Timeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
	if err != nil {
		return 0, 0, err
	}

	start := m.now()

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, 0, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}

	progress := m.newProgress(models.DirectionDownload, srv.ID, start, run)
	buf := make([]byte, m.cfg.BufferSize)

	var total int64

	for {
		n, rerr := resp.Body.Read(buf)
		total += int64(n)

		progress.observe(total)

		if errors.Is(rerr, io.EOF) {
			break
		}

		if rerr != nil {
			return total, 0, rerr
		}
	}

	elapsed := m.now().Sub(start)

	if resp.ContentLength > 0 && total != resp.ContentLength {
		return total, elapsed, fmt.Errorf("%w: got %d of %d bytes", errShortBody, total, resp.ContentLength)
	}

	return total, elapsed, nil
}

func (m *Meter) upload(ctx context.Context, run *Run) (models.ThroughputResult, error) {
	result := m.newResult(models.DirectionUpload)
	result.ServerID = m.cfg.UploadURL

	if m.cfg.UploadURL == "" {
		return failedResult(result, errNoUploadURL), errNoUploadURL
	}

	payload := make([]byte, m.cfg.UploadBytes)
	if _, err := rand.Read(payload); err != nil {
		return failedResult(result, err), err
	}

	n, elapsed, err := m.uploadTo(ctx, payload, run)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return cancelledResult(result), ErrCancelled
		}

		return failedResult(result, err), err
	}

	return completedResult(result, n, elapsed), nil
}

func (m *Meter) uploadTo(ctx context.Context, payload []byte, run *Run) (int64, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.cfg.Timeout))
	defer cancel()

	start := m.now()
	body := &countingReader{
		r:        bytes.NewReader(payload),
		progress: m.newProgress(models.DirectionUpload, m.cfg.UploadURL, start, run),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.UploadURL, body)
	if err != nil {
		return 0, 0, err
	}

	req.ContentLength = int64(len(payload))
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := m.client.Do(req)
	if err != nil {
		return body.n, 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	elapsed := m.now().Sub(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body.n, elapsed, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}

	return int64(len(payload)), elapsed, nil
}

func completedResult(r models.ThroughputResult, n int64, elapsed time.Duration) models.ThroughputResult {
	r.BytesTransferred = n
	r.ElapsedSeconds = elapsed.Seconds()
	r.RateMbps = models.RateMbps(n, elapsed)
	r.Outcome = models.OutcomeCompleted

	return r
}

func failedResult(r models.ThroughputResult, err error) models.ThroughputResult {
	r.Outcome = models.OutcomeFailed

	if err != nil {
		r.Error = err.Error()
	}

	return r
}

func cancelledResult(r models.ThroughputResult) models.ThroughputResult {
	r.Outcome = models.OutcomeCancelled
	r.Error = ErrCancelled.Error()

	return r
}
