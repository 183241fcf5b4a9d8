/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package probe pkg/probe/icmp.go
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

const (
	protocolICMP  = 1
	maxPacketSize = 1500
)

var echoPayload = []byte("netdiag-echo")

// ICMPProber sends one ICMP echo per probe. With privileged set it uses a raw
// socket, otherwise the unprivileged datagram ICMP socket Linux and macOS
// offer to ordinary users.
type ICMPProber struct {
	privileged bool
	id         int
	seq        atomic.Uint32
}

func NewICMPProber(privileged bool) *ICMPProber {
	return &ICMPProber{
		privileged: privileged,
		id:         os.Getpid() & 0xffff,
	}
}

func (p *ICMPProber) network() string {
	if p.privileged {
		return "ip4:icmp"
	}

	return "udp4"
}

// Available reports whether an ICMP socket can be opened on this host.
func (p *ICMPProber) Available() error {
	conn, err := icmp.ListenPacket(p.network(), "0.0.0.0")
	if err != nil {
		if errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES) {
			return fmt.Errorf("%w: %w", errSocketForbidden, err)
		}

		return err
	}

	return conn.Close()
}

func (p *ICMPProber) Probe(ctx context.Context, target string, timeout time.Duration) models.ProbeSample {
	sample := models.ProbeSample{
		Target:    target,
		RTTMs:     models.Unavailable,
		Timestamp: time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rtt, err := p.echo(ctx, target)
	if err != nil {
		return failed(sample, err)
	}

	sample.Success = true
	sample.RTTMs = durationMs(rtt)

	return sample
}

func (p *ICMPProber) echo(ctx context.Context, target string) (time.Duration, error) {
	addr, err := resolveIPv4(ctx, target)
	if err != nil {
		return 0, err
	}

	conn, err := icmp.ListenPacket(p.network(), "0.0.0.0")
	if err != nil {
		return 0, fmt.Errorf("failed to open ICMP socket: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return 0, err
		}
	}

	// unblock ReadFrom as soon as the caller gives up
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	seq := int(p.seq.Add(1) & 0xffff)

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   p.id,
			Seq:  seq,
			Data: echoPayload,
		},
	}

	wb, err := msg.Marshal(nil)
	if err != nil {
		return 0, err
	}

	var dst net.Addr = &net.UDPAddr{IP: addr.AsSlice()}
	if p.privileged {
		dst = &net.IPAddr{IP: addr.AsSlice()}
	}

	start := time.Now()

	if _, err := conn.WriteTo(wb, dst); err != nil {
		return 0, fmt.Errorf("failed to send echo: %w", err)
	}

	rb := make([]byte, maxPacketSize)

	for {
		n, _, err := conn.ReadFrom(rb)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}

			return 0, err
		}

		reply, err := icmp.ParseMessage(protocolICMP, rb[:n])
		if err != nil || reply.Type != ipv4.ICMPTypeEchoReply {
			continue
		}

		echo, ok := reply.Body.(*icmp.Echo)
		if !ok || echo.Seq != seq {
			continue
		}

		// the kernel rewrites the identifier on unprivileged sockets
		if p.privileged && echo.ID != p.id {
			continue
		}

		return time.Since(start), nil
	}
}

func resolveIPv4(ctx context.Context, target string) (netip.Addr, error) {
	if target == "" {
		return netip.Addr{}, errEmptyTarget
	}

	if addr, err := netip.ParseAddr(target); err == nil {
		if !addr.Is4() && !addr.Is4In6() {
			return netip.Addr{}, fmt.Errorf("%w: %s", errNoIPv4Address, target)
		}

		return addr.Unmap(), nil
	}

	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip4", target)
	if err != nil {
		return netip.Addr{}, err
	}

	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("%w: %s", errNoIPv4Address, target)
	}

	return addrs[0].Unmap(), nil
}
