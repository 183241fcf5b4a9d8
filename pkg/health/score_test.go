package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDNSScore(t *testing.T) {
	tests := []struct {
		latency float64
		want    int
	}{
		{latency: -1, want: 0},
		{latency: 0, want: 100},
		{latency: 29.9, want: 100},
		{latency: 30, want: 80},
		{latency: 49, want: 80},
		{latency: 50, want: 60},
		{latency: 99, want: 60},
		{latency: 100, want: 40},
		{latency: 199, want: 40},
		{latency: 200, want: 20},
		{latency: 5000, want: 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DNSScore(tt.latency, DefaultDNSTiers, defaultFloorScore), "latency %v", tt.latency)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {80, "B"}, {79, "C"},
		{70, "C"}, {69, "D"}, {60, "D"}, {59, "F"}, {0, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %d", tt.score)
	}
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name     string
		dns      int
		gateway  bool
		internet bool
		loss     float64
		want     int
	}{
		{name: "reference scenario", dns: 80, gateway: false, internet: true, loss: 20, want: 70},
		{name: "perfect", dns: 100, gateway: true, internet: true, loss: 0, want: 100},
		{name: "nothing works", dns: 0, gateway: false, internet: false, loss: 100, want: 0},
		{name: "truncates", dns: 60, gateway: true, internet: true, loss: 3, want: 87},
		{name: "loss clamped", dns: 100, gateway: true, internet: true, loss: 150, want: 80},
		{name: "negative loss clamped", dns: 100, gateway: true, internet: true, loss: -50, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Composite(tt.dns, tt.gateway, tt.internet, tt.loss, DefaultWeights)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComposite_AlwaysInRange(t *testing.T) {
	heavy := Weights{DNS: 1, Gateway: 1, Internet: 1, Loss: 1}

	for dns := 0; dns <= 100; dns += 20 {
		for loss := 0.0; loss <= 100; loss += 10 {
			for _, ok := range []bool{true, false} {
				for _, w := range []Weights{DefaultWeights, heavy} {
					score := Composite(dns, ok, !ok, loss, w)
					assert.GreaterOrEqual(t, score, 0)
					assert.LessOrEqual(t, score, 100)
				}
			}
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8.8.8.8", cfg.DNSTarget)
	assert.Equal(t, 10, cfg.LossProbes)
	assert.Equal(t, DefaultWeights, *cfg.Weights)
	require.NotNil(t, cfg.FloorScore)
	assert.Equal(t, defaultFloorScore, *cfg.FloorScore)

	zero := 0
	explicit := Config{FloorScore: &zero}
	require.NoError(t, explicit.Validate())
	assert.Equal(t, 0, *explicit.FloorScore)
	assert.Equal(t, 0, DNSScore(900, explicit.DNSTiers, explicit.floorScore()))

	over := 120
	require.ErrorIs(t, (&Config{FloorScore: &over}).Validate(), errInvalidFloor)

	bad := Config{Weights: &Weights{DNS: -1}}
	require.ErrorIs(t, bad.Validate(), errInvalidWeights)

	unsorted := Config{DNSTiers: []Tier{{BelowMs: 50, Score: 80}, {BelowMs: 30, Score: 100}}}
	require.ErrorIs(t, unsorted.Validate(), errInvalidTiers)
}
