package agent

import (
	"context"

	"github.com/carverauto/netdiag/pkg/models"
)

//go:generate mockgen -destination=mock_evaluator.go -package=agent github.com/carverauto/netdiag/pkg/agent Evaluator

// Evaluator produces one health report.
type Evaluator interface {
	Evaluate(ctx context.Context) models.HealthReport
}
