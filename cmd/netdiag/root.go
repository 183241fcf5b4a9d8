package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/carverauto/netdiag/pkg/app"
)

type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "netdiag",
		Short:         "Network diagnostics: latency, throughput, MTU, traceroute and WiFi channels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON or YAML config file")

	root.AddCommand(
		newPingCmd(opts),
		newHealthCmd(opts),
		newMTUCmd(opts),
		newSpeedCmd(opts),
		newTraceCmd(opts),
		newWifiCmd(opts),
		newPublicIPCmd(opts),
		newTrafficCmd(opts),
		newAgentCmd(opts),
	)

	return root
}

// build loads the configuration and wires the components.
func (o *options) build() (*app.App, error) {
	cfg, err := app.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return app.New(cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
