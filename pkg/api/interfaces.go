package api

import (
	"context"
	"iter"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/carverauto/netdiag/pkg/speedtest"
)

// HealthSource serves current and past health reports.
type HealthSource interface {
	Latest() *models.HealthReport
	RunOnce(ctx context.Context) models.HealthReport
	History(ctx context.Context, limit int) ([]models.HealthReport, error)
}

// ResolverBenchmark ranks DNS resolvers by latency.
type ResolverBenchmark interface {
	BenchmarkResolvers(ctx context.Context) []models.ResolverResult
}

// MTUDiscoverer searches the path MTU towards a target.
type MTUDiscoverer interface {
	DiscoverTarget(ctx context.Context, target string) models.MTUResult
}

// WifiAnalyzer scans and analyzes nearby WiFi networks.
type WifiAnalyzer interface {
	Run(ctx context.Context) models.ChannelAnalysis
}

// PublicIPDetector finds the public address of the host.
type PublicIPDetector interface {
	Detect(ctx context.Context) (models.PublicAddress, error)
}

// TrafficSampler measures interface throughput over one interval.
type TrafficSampler interface {
	Sample(ctx context.Context) (models.TrafficReport, error)
}

// Tracer streams the hops towards a target.
type Tracer interface {
	Trace(ctx context.Context, target string) iter.Seq2[models.TraceHop, error]
}

// SpeedMeter starts throughput runs.
type SpeedMeter interface {
	Download(ctx context.Context) *speedtest.Run
	Upload(ctx context.Context) *speedtest.Run
}

// ThroughputRecorder receives finished throughput results.
type ThroughputRecorder interface {
	RecordThroughput(ctx context.Context, result *models.ThroughputResult)
}
