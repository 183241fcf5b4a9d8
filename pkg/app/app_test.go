package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netdiag/pkg/geo"
	"github.com/carverauto/netdiag/pkg/probe"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, probe.ModeAuto, cfg.Probe.Mode)
	assert.Equal(t, 1200, cfg.MTU.Low)
	assert.Equal(t, 1500, cfg.MTU.High)
	assert.Equal(t, 30, cfg.Trace.MaxHops)
	assert.Equal(t, []geo.Provider{geo.ProviderIPAPI}, cfg.Geo.Providers)
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Agent.Interval))
	assert.NotEmpty(t, cfg.Speed.Servers)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdiag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
probe:
  mode: tcp
  attempts: 6
  timeout: 500ms
mtu:
  target: 1.1.1.1
  on_fragmentation: stop
geo:
  providers: [none]
agent:
  interval: 30s
  history_path: /tmp/netdiag.db
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, probe.ModeTCP, cfg.Probe.Mode)
	assert.Equal(t, 6, cfg.Probe.Attempts)
	assert.Equal(t, 500*time.Millisecond, time.Duration(cfg.Probe.Timeout))
	assert.Equal(t, "1.1.1.1", cfg.MTU.Target)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Agent.Interval))
	assert.Equal(t, 1500, cfg.MTU.High)
}

func TestLoadRejectsBadSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdiag.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"probe":{"mode":"carrier-pigeon"}}`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe:")
}

func TestNewWithoutGeo(t *testing.T) {
	cfg := Default()
	cfg.Geo.Providers = []geo.Provider{geo.ProviderNone}

	a, err := New(cfg)
	require.NoError(t, err)

	defer func() { _ = a.Close() }()

	assert.Nil(t, a.Geo)
	assert.NotNil(t, a.NewTracer())

	ag, err := a.NewAgent()
	require.NoError(t, err)

	deps := a.APIDeps(ag)
	assert.NotNil(t, deps.Health)
	assert.NotNil(t, deps.Metrics)
	assert.NotNil(t, deps.NewTracer())
}
