package speedtest

import (
	"io"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
)

// minElapsed keeps the first samples from reporting absurd rates.
const minElapsed = 100 * time.Millisecond

type progress struct {
	direction models.TransferDirection
	serverID  string
	interval  time.Duration
	start     time.Time
	offset    time.Duration
	last      time.Time
	now       func() time.Time
	run       *Run
}

func (m *Meter) newProgress(direction models.TransferDirection, serverID string, start time.Time, run *Run) *progress {
	return &progress{
		direction: direction,
		serverID:  serverID,
		interval:  time.Duration(m.cfg.ProgressInterval),
		start:     start,
		offset:    run.offset(start),
		last:      start,
		now:       m.now,
		run:       run,
	}
}

func (p *progress) observe(total int64) {
	now := p.now()

	if now.Sub(p.last) < p.interval {
		return
	}

	elapsed := now.Sub(p.start)
	if elapsed <= minElapsed {
		return
	}

	p.last = now

	// Elapsed time counts from the first attempt so it keeps growing across
	// server fallbacks; the rate covers the current transfer only.
	p.run.emit(models.ThroughputSample{
		Direction:      p.direction,
		ServerID:       p.serverID,
		Bytes:          total,
		ElapsedSeconds: (p.offset + elapsed).Seconds(),
		RateMbps:       models.RateMbps(total, elapsed),
	})
}

type countingReader struct {
	r        io.Reader
	n        int64
	progress *progress
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.n += int64(n)
	c.progress.observe(c.n)

	return n, err
}
