package mtu

import (
	"context"
	"log"
	"math"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/netdiag/pkg/execx"
)

// PingProber implements FragmentProber with the platform ping utility.
type PingProber struct {
	runner  execx.Runner
	goos    string
	timeout time.Duration
}

func NewPingProber(runner execx.Runner, timeout time.Duration) *PingProber {
	return &PingProber{runner: runner, goos: runtime.GOOS, timeout: timeout}
}

func (p *PingProber) ProbeDF(ctx context.Context, target string, payload int) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.timeout+time.Second)
	defer cancel()

	out, err := p.runner.Output(ctx, "ping", pingArgs(p.goos, target, payload, p.timeout)...)
	if err != nil && out == "" {
		log.Printf("MTU probe of %s with %d bytes failed: %v", target, payload, err)
	}

	return ClassifyPingOutput(out)
}

func pingArgs(goos, target string, payload int, timeout time.Duration) []string {
	size := strconv.Itoa(payload)
	secs := strconv.Itoa(int(math.Max(1, math.Ceil(timeout.Seconds()))))

	switch goos {
	case "windows":
		return []string{"-f", "-l", size, "-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), target}
	case "darwin", "freebsd":
		return []string{"-D", "-s", size, "-c", "1", "-t", secs, target}
	default:
		return []string{"-M", "do", "-s", size, "-c", "1", "-W", secs, target}
	}
}

var (
	fragmentMarkers = []string{
		"fragmented",
		"frag needed",
		"message too long",
	}
	successMarkers = []string{
		"ttl=",
		"reply from",
		"bytes from",
	}
)

// ClassifyPingOutput interprets ping output. Fragmentation markers win over
// success markers because Windows prints both on some failures.
func ClassifyPingOutput(out string) Outcome {
	lower := strings.ToLower(out)

	for _, m := range fragmentMarkers {
		if strings.Contains(lower, m) {
			return OutcomeFragmented
		}
	}

	for _, m := range successMarkers {
		if strings.Contains(lower, m) {
			return OutcomeSuccess
		}
	}

	return OutcomeFailed
}
