package history

import (
	"context"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
)

//go:generate mockgen -destination=mock_recorder.go -package=history github.com/carverauto/netdiag/pkg/history Recorder

// Recorder persists diagnostic results.
type Recorder interface {
	SaveHealth(ctx context.Context, report *models.HealthReport) error
	SaveThroughput(ctx context.Context, result *models.ThroughputResult) error
	RecentHealth(ctx context.Context, limit int) ([]models.HealthReport, error)
	RecentThroughput(ctx context.Context, limit int) ([]models.ThroughputResult, error)
	Clean(ctx context.Context, retention time.Duration) error
	Close() error
}
