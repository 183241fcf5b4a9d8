package metrics

import (
	"github.com/carverauto/netdiag/pkg/models"
)

//go:generate mockgen -destination=mock_buffer.go -package=metrics github.com/carverauto/netdiag/pkg/metrics ReportStore

// ReportStore keeps the most recent health reports.
type ReportStore interface {
	Add(report models.HealthReport)
	Reports() []models.HealthReport
	Last() *models.HealthReport
}
