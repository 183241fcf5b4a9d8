package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"ping", "health", "mtu", "speed", "trace", "wifi", "publicip", "traffic", "agent"} {
		assert.Contains(t, names, want)
	}

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}

func TestArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"speed without direction", []string{"speed"}},
		{"speed with bad direction", []string{"speed", "sideways"}},
		{"trace without host", []string{"trace"}},
		{"ping with two hosts", []string{"ping", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetArgs(tt.args)
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})

			assert.Error(t, root.Execute())
		})
	}
}

func TestMissingConfigFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--config", t.TempDir() + "/missing.yaml", "wifi"})
	root.SetOut(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printJSON(&buf, map[string]int{"score": 87}))
	assert.Equal(t, "{\n  \"score\": 87\n}\n", buf.String())

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 87, decoded["score"])
}

func TestPingWritesToCommandOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdiag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
probe:
  mode: tcp
  attempts: 2
  timeout: 500ms
geo:
  providers: [none]
`), 0o600))

	var out bytes.Buffer

	root := newRootCmd()
	root.SetArgs([]string{"--config", path, "ping", "127.0.0.1"})
	root.SetOut(&out)

	require.NoError(t, root.Execute())

	var stats struct {
		Target     string `json:"target"`
		TotalCount int    `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.Equal(t, "127.0.0.1", stats.Target)
	assert.Equal(t, 2, stats.TotalCount)
}
