package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
)

// DefaultTCPPorts are tried in order by the TCP prober.
var DefaultTCPPorts = []int{443, 80, 53}

// TCPProber measures the time to complete a TCP handshake. A refused
// connection still proves the host answered, so it counts as a success.
type TCPProber struct {
	ports []int
}

func NewTCPProber(ports ...int) *TCPProber {
	if len(ports) == 0 {
		ports = DefaultTCPPorts
	}

	return &TCPProber{ports: ports}
}

func (p *TCPProber) Probe(ctx context.Context, target string, timeout time.Duration) models.ProbeSample {
	sample := models.ProbeSample{
		Target:    target,
		RTTMs:     models.Unavailable,
		Timestamp: time.Now(),
	}

	if target == "" {
		return failed(sample, errEmptyTarget)
	}

	if len(p.ports) == 0 {
		return failed(sample, errNoPorts)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error

	for _, port := range p.ports {
		rtt, err := p.dial(ctx, target, port)
		if err == nil {
			sample.Success = true
			sample.RTTMs = durationMs(rtt)

			return sample
		}

		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return failed(sample, lastErr)
}

func (*TCPProber) dial(ctx context.Context, host string, port int) (time.Duration, error) {
	var d net.Dialer

	start := time.Now()

	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	rtt := time.Since(start)

	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return rtt, nil
		}

		return 0, err
	}

	_ = conn.Close()

	return rtt, nil
}
