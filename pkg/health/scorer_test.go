package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
	"github.com/carverauto/netdiag/pkg/models"
	"github.com/carverauto/netdiag/pkg/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testDNS      = "1.1.1.1"
	testInternet = "9.9.9.9"
	testGateway  = "192.168.1.1"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := Config{
		DNSTarget:       testDNS,
		InternetTarget:  testInternet,
		DNSTimeout:      config.Duration(2 * time.Second),
		GatewayTimeout:  config.Duration(2 * time.Second),
		InternetTimeout: config.Duration(3 * time.Second),
		LossTimeout:     config.Duration(time.Second),
	}
	require.NoError(t, cfg.Validate())

	return cfg
}

func success(target string, rtt float64) models.ProbeSample {
	return models.ProbeSample{Target: target, Success: true, RTTMs: rtt}
}

func failure(target string) models.ProbeSample {
	return models.ProbeSample{Target: target, RTTMs: models.Unavailable, ErrorKind: models.ErrorKindTimeout}
}

func TestScorer_Evaluate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prober := probe.NewMockProber(ctrl)
	gateway := NewMockGatewayResolver(ctrl)

	prober.EXPECT().Probe(gomock.Any(), testDNS, 2*time.Second).Return(success(testDNS, 40)).Times(3)
	gateway.EXPECT().DefaultGateway(gomock.Any()).Return(testGateway, nil)
	prober.EXPECT().Probe(gomock.Any(), testGateway, 2*time.Second).Return(failure(testGateway))
	prober.EXPECT().Probe(gomock.Any(), testInternet, 3*time.Second).Return(success(testInternet, 25))

	var lossProbes atomic.Int32

	prober.EXPECT().Probe(gomock.Any(), testInternet, time.Second).DoAndReturn(
		func(context.Context, string, time.Duration) models.ProbeSample {
			if lossProbes.Add(1) <= 2 {
				return failure(testInternet)
			}

			return success(testInternet, 25)
		}).Times(10)

	report := NewScorer(testConfig(t), prober, gateway).Evaluate(context.Background())

	assert.InDelta(t, 40, report.DNSLatencyMs, 1e-9)
	assert.Equal(t, 80, report.DNSScore)
	assert.Equal(t, testGateway, report.Gateway)
	assert.False(t, report.GatewayReachable)
	assert.InDelta(t, models.Unavailable, report.GatewayLatencyMs, 1e-9)
	assert.True(t, report.InternetReachable)
	assert.InDelta(t, 25, report.InternetLatencyMs, 1e-9)
	assert.InDelta(t, 20, report.PacketLossPct, 1e-9)
	assert.Equal(t, 70, report.Score)
	assert.Equal(t, "C", report.Grade)
	assert.Empty(t, report.Error)
}

func TestScorer_EvaluateAllHealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prober := probe.NewMockProber(ctrl)
	gateway := NewMockGatewayResolver(ctrl)

	gateway.EXPECT().DefaultGateway(gomock.Any()).Return(testGateway, nil)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, target string, _ time.Duration) models.ProbeSample {
			return success(target, 5)
		}).AnyTimes()

	report := NewScorer(testConfig(t), prober, gateway).Evaluate(context.Background())

	assert.Equal(t, 100, report.Score)
	assert.Equal(t, "A", report.Grade)
}

func TestScorer_EvaluateGatewayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prober := probe.NewMockProber(ctrl)
	gateway := NewMockGatewayResolver(ctrl)

	gateway.EXPECT().DefaultGateway(gomock.Any()).Return("", errors.New("no route"))
	prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, target string, _ time.Duration) models.ProbeSample {
			return failure(target)
		}).AnyTimes()

	report := NewScorer(testConfig(t), prober, gateway).Evaluate(context.Background())

	assert.Equal(t, 0, report.Score)
	assert.Equal(t, "F", report.Grade)
	assert.InDelta(t, models.Unavailable, report.DNSLatencyMs, 1e-9)
	assert.InDelta(t, 100, report.PacketLossPct, 1e-9)
	assert.Contains(t, report.Error, "no route")
}

func TestScorer_EvaluateRecoversPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prober := probe.NewMockProber(ctrl)
	gateway := NewMockGatewayResolver(ctrl)

	gateway.EXPECT().DefaultGateway(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		panic("route table exploded")
	})
	prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, target string, _ time.Duration) models.ProbeSample {
			return success(target, 10)
		}).AnyTimes()

	report := NewScorer(testConfig(t), prober, gateway).Evaluate(context.Background())

	assert.Contains(t, report.Error, "route table exploded")
	assert.False(t, report.GatewayReachable)
	assert.Equal(t, 80, report.Score)
	assert.Equal(t, "B", report.Grade)
}

func TestScorer_BenchmarkResolvers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prober := probe.NewMockProber(ctrl)

	cfg := testConfig(t)
	cfg.Resolvers = []Resolver{
		{Name: "slow", Address: "10.0.0.1"},
		{Name: "dead", Address: "10.0.0.2"},
		{Name: "fast", Address: "10.0.0.3"},
	}

	rtts := map[string]float64{"10.0.0.1": 90, "10.0.0.3": 12}

	prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, target string, _ time.Duration) models.ProbeSample {
			if rtt, ok := rtts[target]; ok {
				return success(target, rtt)
			}

			return failure(target)
		}).AnyTimes()

	results := NewScorer(cfg, prober, nil).BenchmarkResolvers(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, "fast", results[0].Name)
	assert.Equal(t, "slow", results[1].Name)
	assert.Equal(t, "dead", results[2].Name)
	assert.InDelta(t, models.Unavailable, results[2].LatencyMs, 1e-9)
	assert.InDelta(t, 100, results[2].LossPct, 1e-9)
}
