package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/carverauto/netdiag/pkg/api"
	"github.com/carverauto/netdiag/pkg/app"
	"github.com/carverauto/netdiag/pkg/grpc"
	"github.com/carverauto/netdiag/pkg/lifecycle"
	"github.com/carverauto/netdiag/pkg/models"
)

const serviceName = "NetdiagAgent"

func newAgentCmd(opts *options) *cobra.Command {
	var listen, grpcAddr string

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run periodic health checks and serve the HTTP API",
		RunE: withApp(opts, func(ctx context.Context, a *app.App, _ io.Writer, _ []string) error {
			if listen != "" {
				a.Config.Agent.ListenAddr = listen
			}

			if grpcAddr != "" {
				a.Config.Agent.GRPCAddr = grpcAddr
			}

			return runAgent(ctx, a)
		}),
	}

	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides the config)")
	cmd.Flags().StringVar(&grpcAddr, "grpc", "", "gRPC health listen address (overrides the config)")

	return cmd
}

func runAgent(ctx context.Context, a *app.App) error {
	ag, err := a.NewAgent()
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	server := api.NewServer(a.APIDeps(ag))

	// The gRPC health status follows internet reachability of the latest report.
	reportHealth := func(s *grpc.Server) error {
		ag.OnReport(func(r models.HealthReport) {
			s.SetServing(serviceName, r.InternetReachable)
		})

		return nil
	}

	return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ServiceName:          serviceName,
		Service:              ag,
		GRPCAddr:             a.Config.Agent.GRPCAddr,
		RegisterGRPCServices: []lifecycle.GRPCServiceRegistrar{reportHealth},
		HTTPServer:           server.HTTPServer(a.Config.Agent.ListenAddr),
	})
}
