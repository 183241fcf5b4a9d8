package probe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/carverauto/netdiag/pkg/config"
	"github.com/carverauto/netdiag/pkg/models"
)

// Mode selects the probe implementation.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeICMP Mode = "icmp"
	ModeTCP  Mode = "tcp"
)

// Config configures the prober and the default measurement run.
type Config struct {
	Mode       Mode            `json:"mode" yaml:"mode"`
	Privileged bool            `json:"privileged" yaml:"privileged"`
	TCPPorts   []int           `json:"tcp_ports" yaml:"tcp_ports"`
	Attempts   int             `json:"attempts" yaml:"attempts"`
	Timeout    config.Duration `json:"timeout" yaml:"timeout"`
	Delay      config.Duration `json:"delay" yaml:"delay"`
}

func (c *Config) Validate() error {
	switch c.Mode {
	case "":
		c.Mode = ModeAuto
	case ModeAuto, ModeICMP, ModeTCP:
	default:
		return fmt.Errorf("%w: %q", errUnknownMode, c.Mode)
	}

	if len(c.TCPPorts) == 0 {
		c.TCPPorts = DefaultTCPPorts
	}

	if c.Attempts <= 0 {
		c.Attempts = defaultAttempts
	}

	if c.Timeout <= 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	if c.Delay < 0 {
		c.Delay = 0
	}

	return nil
}

// Options returns the measurement options described by the config.
func (c *Config) Options() Options {
	return Options{
		Attempts: c.Attempts,
		Timeout:  time.Duration(c.Timeout),
		Delay:    time.Duration(c.Delay),
	}
}

// New builds the prober selected by cfg.
func New(cfg *Config) Prober {
	switch cfg.Mode {
	case ModeTCP:
		return NewTCPProber(cfg.TCPPorts...)
	case ModeICMP:
		return NewICMPProber(cfg.Privileged)
	case ModeAuto:
	}

	return NewFallbackProber(NewICMPProber(cfg.Privileged), NewTCPProber(cfg.TCPPorts...))
}

// FallbackProber uses ICMP when the host lets us open an ICMP socket and TCP
// connect timing otherwise. The check runs once, on first use.
type FallbackProber struct {
	icmp     *ICMPProber
	fallback Prober

	once   sync.Once
	active Prober
}

func NewFallbackProber(icmpProber *ICMPProber, fallback Prober) *FallbackProber {
	return &FallbackProber{icmp: icmpProber, fallback: fallback}
}

func (p *FallbackProber) Probe(ctx context.Context, target string, timeout time.Duration) models.ProbeSample {
	p.once.Do(func() {
		p.active = p.icmp

		if err := p.icmp.Available(); err != nil {
			log.Printf("ICMP unavailable, falling back to TCP probing: %v", err)

			p.active = p.fallback
		}
	})

	return p.active.Probe(ctx, target, timeout)
}

func failed(sample models.ProbeSample, err error) models.ProbeSample {
	sample.Success = false
	sample.RTTMs = models.Unavailable
	sample.ErrorKind = Classify(err)

	if err != nil {
		sample.Error = err.Error()
	}

	return sample
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Classify maps an error returned by the network stack or a subprocess onto
// an ErrorKind.
func Classify(err error) models.ErrorKind {
	if err == nil {
		return models.ErrorKindNone
	}

	if errors.Is(err, context.Canceled) {
		return models.ErrorKindCancelled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrorKindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.ErrorKindTimeout
	}

	return models.ErrorKindUnavailable
}
