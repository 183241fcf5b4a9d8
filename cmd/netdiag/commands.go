package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/carverauto/netdiag/pkg/app"
	"github.com/carverauto/netdiag/pkg/models"
	"github.com/carverauto/netdiag/pkg/probe"
	"github.com/carverauto/netdiag/pkg/speedtest"
)

type runFunc func(ctx context.Context, a *app.App, out io.Writer, args []string) error

// withApp runs fn with a wired App and a context canceled on SIGINT/SIGTERM.
func withApp(opts *options, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := opts.build()
		if err != nil {
			return err
		}

		defer func() {
			if err := a.Close(); err != nil {
				log.Printf("Failed to close: %v", err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return fn(ctx, a, cmd.OutOrStdout(), args)
	}
}

func newPingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping <host>",
		Short: "Measure round-trip latency, jitter and loss to a host",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			stats := probe.Measure(ctx, a.Prober, args[0], a.Config.Probe.Options())

			return printJSON(out, stats)
		}),
	}
}

func newHealthCmd(opts *options) *cobra.Command {
	var resolvers bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Score overall connection health",
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			if resolvers {
				return printJSON(out, a.Scorer.BenchmarkResolvers(ctx))
			}

			return printJSON(out, a.Scorer.Evaluate(ctx))
		}),
	}

	cmd.Flags().BoolVar(&resolvers, "resolvers", false, "Benchmark the configured DNS resolvers instead")

	return cmd
}

func newMTUCmd(opts *options) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "mtu",
		Short: "Discover the largest unfragmented packet size",
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			if target == "" {
				return printJSON(out, a.MTU.Discover(ctx))
			}

			return printJSON(out, a.MTU.DiscoverTarget(ctx, target))
		}),
	}

	cmd.Flags().StringVar(&target, "target", "", "Target host (defaults to the configured target)")

	return cmd
}

func newSpeedCmd(opts *options) *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:       "speed <download|upload>",
		Short:     "Measure download or upload throughput",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(models.DirectionDownload), string(models.DirectionUpload)},
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			var run *speedtest.Run

			if models.TransferDirection(args[0]) == models.DirectionUpload {
				run = a.Meter.Upload(ctx)
			} else {
				run = a.Meter.Download(ctx)
			}

			for sample := range run.Progress() {
				if progress {
					log.Printf("%s %s: %d bytes, %.2f Mbps", sample.Direction, sample.ServerID, sample.Bytes, sample.RateMbps)
				}
			}

			result, err := run.Wait()

			if perr := printJSON(out, result); perr != nil {
				return perr
			}

			return err
		}),
	}

	cmd.Flags().BoolVar(&progress, "progress", false, "Log progress samples while the transfer runs")

	return cmd
}

func newTraceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "trace <host>",
		Short: "Trace the route to a host with geo location per hop",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			hops, err := a.NewTracer().Collect(ctx, args[0])
			if perr := printJSON(out, hops); perr != nil {
				return perr
			}

			if err != nil {
				return fmt.Errorf("trace %s: %w", args[0], err)
			}

			return nil
		}),
	}
}

func newWifiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "wifi",
		Short: "Analyze WiFi channel congestion and recommend a channel",
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			return printJSON(out, a.Wifi.Run(ctx))
		}),
	}
}

func newPublicIPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "publicip",
		Short: "Discover the public address and NAT behavior",
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			addr, err := a.PublicIP.Detect(ctx)
			if err != nil {
				return err
			}

			return printJSON(out, addr)
		}),
	}
}

func newTrafficCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "traffic",
		Short: "Sample per-interface receive and transmit rates",
		RunE: withApp(opts, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			report, err := a.Traffic.Sample(ctx)
			if err != nil {
				return err
			}

			return printJSON(out, report)
		}),
	}
}
