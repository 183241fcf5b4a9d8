package metrics

import (
	"sync"

	"github.com/carverauto/netdiag/pkg/models"
)

const DefaultRetention = 100

// RingBuffer is a fixed-size ReportStore that overwrites its oldest entry.
type RingBuffer struct {
	mu      sync.RWMutex
	reports []models.HealthReport
	pos     int
	count   int
}

// NewBuffer creates a RingBuffer holding size reports.
func NewBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRetention
	}

	return &RingBuffer{reports: make([]models.HealthReport, size)}
}

// Add appends a report, evicting the oldest when full.
func (b *RingBuffer) Add(report models.HealthReport) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reports[b.pos] = report
	b.pos = (b.pos + 1) % len(b.reports)
	b.count = min(b.count+1, len(b.reports))
}

// Reports returns the stored reports, newest first.
func (b *RingBuffer) Reports() []models.HealthReport {
	b.mu.RLock()
	defer b.mu.RUnlock()

	size := len(b.reports)
	out := make([]models.HealthReport, b.count)

	for i := range b.count {
		out[i] = b.reports[(b.pos-i-1+size)%size]
	}

	return out
}

// Last returns the newest report, or nil if none has been added.
func (b *RingBuffer) Last() *models.HealthReport {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	size := len(b.reports)
	last := b.reports[(b.pos-1+size)%size]

	return &last
}
