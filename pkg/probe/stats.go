package probe

import (
	"context"
	"math"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
)

const (
	defaultAttempts = 4
	defaultTimeout  = 2 * time.Second
)

// Options controls a measurement run.
type Options struct {
	Attempts int
	Timeout  time.Duration
	// Delay is the pause between consecutive attempts.
	Delay time.Duration
}

// Measure issues opts.Attempts sequential probes against target and
// aggregates them. It never fails: unreachable targets yield 100% loss and
// Unavailable latencies. Attempts not issued because ctx ended count as lost.
func Measure(ctx context.Context, p Prober, target string, opts Options) models.LatencyStats {
	if opts.Attempts <= 0 {
		opts.Attempts = defaultAttempts
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	samples := make([]models.ProbeSample, 0, opts.Attempts)

	for i := 0; i < opts.Attempts; i++ {
		if ctx.Err() != nil {
			samples = append(samples, failed(models.ProbeSample{Target: target, Timestamp: time.Now()}, ctx.Err()))
			continue
		}

		samples = append(samples, p.Probe(ctx, target, opts.Timeout))

		if opts.Delay > 0 && i < opts.Attempts-1 {
			wait(ctx, opts.Delay)
		}
	}

	return Summarize(target, samples)
}

// Summarize aggregates samples. Loss is computed over all samples while the
// latency figures only consider successful ones.
func Summarize(target string, samples []models.ProbeSample) models.LatencyStats {
	stats := models.LatencyStats{
		Target:     target,
		AvgMs:      models.Unavailable,
		MinMs:      models.Unavailable,
		MaxMs:      models.Unavailable,
		JitterMs:   models.Unavailable,
		TotalCount: len(samples),
	}

	if len(samples) == 0 {
		stats.LossPct = 100
		return stats
	}

	rtts := make([]float64, 0, len(samples))

	for _, s := range samples {
		if s.Success {
			rtts = append(rtts, s.RTTMs)
		}
	}

	stats.SuccessCount = len(rtts)
	stats.LossPct = float64(len(samples)-len(rtts)) / float64(len(samples)) * 100

	if len(rtts) == 0 {
		return stats
	}

	minRTT, maxRTT, total := math.Inf(1), math.Inf(-1), 0.0

	for _, rtt := range rtts {
		total += rtt
		minRTT = math.Min(minRTT, rtt)
		maxRTT = math.Max(maxRTT, rtt)
	}

	stats.AvgMs = total / float64(len(rtts))
	stats.MinMs = minRTT
	stats.MaxMs = maxRTT
	stats.JitterMs = Jitter(rtts)

	return stats
}

// Jitter is the mean absolute difference between consecutive values.
func Jitter(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64

	for i := 1; i < len(values); i++ {
		sum += math.Abs(values[i] - values[i-1])
	}

	return sum / float64(len(values)-1)
}

func wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
