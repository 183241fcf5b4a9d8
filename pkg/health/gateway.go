package health

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/netip"
	"os"
	"runtime"
	"strings"

	"github.com/carverauto/netdiag/pkg/execx"
)

const procRoutePath = "/proc/net/route"

// ProcRouteResolver reads the Linux kernel routing table.
type ProcRouteResolver struct {
	Path string
}

func (r ProcRouteResolver) DefaultGateway(_ context.Context) (string, error) {
	path := r.Path
	if path == "" {
		path = procRoutePath
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return ParseProcRoute(f)
}

// ParseProcRoute returns the gateway of the first default route in a
// /proc/net/route table.
func ParseProcRoute(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[1] != "00000000" {
			continue
		}

		raw, err := hex.DecodeString(fields[2])
		if err != nil || len(raw) != 4 {
			continue
		}

		// stored in host (little endian) order
		addr := netip.AddrFrom4([4]byte{raw[3], raw[2], raw[1], raw[0]})
		if addr.IsUnspecified() {
			continue
		}

		return addr.String(), nil
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return "", errNoGateway
}

// CommandResolver asks the platform routing tool for the default route.
type CommandResolver struct {
	runner execx.Runner
	goos   string
}

func NewCommandResolver(runner execx.Runner) *CommandResolver {
	return &CommandResolver{runner: runner, goos: runtime.GOOS}
}

func (r *CommandResolver) DefaultGateway(ctx context.Context) (string, error) {
	var (
		out string
		err error
	)

	switch r.goos {
	case "windows":
		out, err = r.runner.Output(ctx, "route", "print", "0.0.0.0")
	case "darwin", "freebsd":
		out, err = r.runner.Output(ctx, "route", "-n", "get", "default")
	default:
		out, err = r.runner.Output(ctx, "ip", "-4", "route", "show", "default")
	}

	if err != nil {
		return "", err
	}

	return ParseRouteOutput(out)
}

// ParseRouteOutput extracts the default gateway from `ip route`, BSD
// `route get` or Windows `route print` output.
func ParseRouteOutput(out string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(out))

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())

		switch {
		case len(fields) >= 3 && fields[0] == "default" && fields[1] == "via":
			if gw, ok := ipv4(fields[2]); ok {
				return gw, nil
			}
		case len(fields) >= 2 && fields[0] == "gateway:":
			if gw, ok := ipv4(fields[1]); ok {
				return gw, nil
			}
		case len(fields) >= 3 && fields[0] == "0.0.0.0" && fields[1] == "0.0.0.0":
			if gw, ok := ipv4(fields[2]); ok {
				return gw, nil
			}
		}
	}

	return "", errNoGateway
}

func ipv4(s string) (string, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() || addr.IsUnspecified() {
		return "", false
	}

	return addr.String(), true
}

// ChainResolver returns the first gateway any of its resolvers finds.
type ChainResolver []GatewayResolver

func (c ChainResolver) DefaultGateway(ctx context.Context) (string, error) {
	var errs []string

	for _, r := range c {
		gw, err := r.DefaultGateway(ctx)
		if err == nil {
			return gw, nil
		}

		errs = append(errs, err.Error())
	}

	return "", fmt.Errorf("%w: %s", errNoGateway, strings.Join(errs, "; "))
}

// DefaultGatewayResolver picks the resolvers that make sense on this host.
func DefaultGatewayResolver(runner execx.Runner) GatewayResolver {
	if runtime.GOOS == "linux" {
		return ChainResolver{ProcRouteResolver{}, NewCommandResolver(runner)}
	}

	return NewCommandResolver(runner)
}
