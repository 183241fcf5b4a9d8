package health

import (
	"context"
	"sort"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/carverauto/netdiag/pkg/probe"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentBenchmarks = 4

// BenchmarkResolvers measures every configured resolver and returns them
// fastest first. Resolvers that never answered sort last.
func (s *Scorer) BenchmarkResolvers(ctx context.Context) []models.ResolverResult {
	results := make([]models.ResolverResult, len(s.cfg.Resolvers))

	var g errgroup.Group

	g.SetLimit(maxConcurrentBenchmarks)

	for i, r := range s.cfg.Resolvers {
		g.Go(func() error {
			stats := probe.Measure(ctx, s.prober, r.Address, probe.Options{
				Attempts: s.cfg.DNSAttempts,
				Timeout:  time.Duration(s.cfg.DNSTimeout),
			})

			results[i] = models.ResolverResult{
				Name:      r.Name,
				Address:   r.Address,
				LatencyMs: latencyOrUnavailable(stats),
				LossPct:   stats.LossPct,
			}

			return nil
		})
	}

	_ = g.Wait()

	SortResolvers(results)

	return results
}

// SortResolvers orders by latency with unavailable resolvers last.
func SortResolvers(results []models.ResolverResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].LatencyMs, results[j].LatencyMs

		switch {
		case a < 0 && b < 0:
			return false
		case a < 0:
			return false
		case b < 0:
			return true
		}

		return a < b
	})
}
