package probe

import (
	"context"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
)

//go:generate mockgen -destination=mock_prober.go -package=probe github.com/carverauto/netdiag/pkg/probe Prober

// Prober issues a single reachability probe. Failures are reported in the
// returned sample, never as an error.
type Prober interface {
	Probe(ctx context.Context, target string, timeout time.Duration) models.ProbeSample
}
