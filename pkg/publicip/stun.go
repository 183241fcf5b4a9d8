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

// Package publicip discovers the address this host presents to the internet.
package publicip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pion/stun/v3"

	"github.com/carverauto/netdiag/pkg/models"
)

const (
	sourceSTUN    = "stun"
	maxSTUNPacket = 1500
)

// STUNResolver sends binding requests to every configured server from one
// UDP socket. With two or more answers it also infers the NAT mapping
// behaviour by comparing the mappings.
type STUNResolver struct {
	servers []string
	timeout time.Duration
}

func NewSTUNResolver(servers []string, timeout time.Duration) *STUNResolver {
	return &STUNResolver{servers: servers, timeout: timeout}
}

func (r *STUNResolver) Resolve(ctx context.Context) (models.PublicAddress, error) {
	if len(r.servers) == 0 {
		return models.PublicAddress{}, errNoServers
	}

	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return models.PublicAddress{}, err
	}
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	mapped := make([]*net.UDPAddr, 0, len(r.servers))

	var lastErr error

	for _, server := range r.servers {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}

		addr, err := r.bind(conn, server)
		if err != nil {
			if ctx.Err() != nil {
				lastErr = ctx.Err()
				break
			}

			log.Printf("STUN binding to %q failed: %v", server, err)

			lastErr = err

			continue
		}

		mapped = append(mapped, addr)
	}

	if len(mapped) == 0 {
		if lastErr == nil {
			return models.PublicAddress{}, errNoMapping
		}

		return models.PublicAddress{}, fmt.Errorf("%w: %w", errNoMapping, lastErr)
	}

	return models.PublicAddress{
		IP:      mapped[0].IP.String(),
		Port:    mapped[0].Port,
		Source:  sourceSTUN,
		NATType: ClassifyNAT(mapped),
	}, nil
}

// ClassifyNAT compares the mappings several servers saw for the same
// socket. Identical mappings mean the NAT reuses one mapping for every
// destination.
func ClassifyNAT(mapped []*net.UDPAddr) models.NATType {
	if len(mapped) < 2 {
		return models.NATUnknown
	}

	first := mapped[0].String()

	for _, m := range mapped[1:] {
		if m.String() != first {
			return models.NATAddressPortDependent
		}
	}

	return models.NATEndpointIndependent
}

func serverAddr(server string) (*net.UDPAddr, error) {
	uriStr := strings.TrimSpace(server)
	if uriStr == "" {
		return nil, errEmptyServer
	}

	if !strings.HasPrefix(uriStr, "stun:") {
		uriStr = "stun:" + uriStr
	}

	uri, err := stun.ParseURI(uriStr)
	if err != nil {
		return nil, err
	}

	return net.ResolveUDPAddr("udp4", net.JoinHostPort(uri.Host, strconv.Itoa(uri.Port)))
}

func (r *STUNResolver) bind(conn net.PacketConn, server string) (*net.UDPAddr, error) {
	raddr, err := serverAddr(server)
	if err != nil {
		return nil, err
	}

	req := stun.MustBuild(stun.TransactionID, stun.BindingRequest, stun.Fingerprint)

	if r.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(r.timeout)); err != nil {
			return nil, err
		}
	}

	if _, err := conn.WriteTo(req.Raw, raddr); err != nil {
		return nil, err
	}

	buf := make([]byte, maxSTUNPacket)

	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			return nil, err
		}

		if from.String() != raddr.String() || !stun.IsMessage(buf[:n]) {
			continue
		}

		res := &stun.Message{Raw: append([]byte(nil), buf[:n]...)}
		if err := res.Decode(); err != nil {
			return nil, err
		}

		if res.TransactionID != req.TransactionID {
			continue
		}

		if res.Type != stun.BindingSuccess {
			var code stun.ErrorCodeAttribute
			if code.GetFrom(res) == nil {
				return nil, fmt.Errorf("%w: %s", errBindingRejected, code)
			}

			return nil, fmt.Errorf("%w: %s", errBindingRejected, res.Type)
		}

		var xor stun.XORMappedAddress
		if err := xor.GetFrom(res); err != nil {
			if !errors.Is(err, stun.ErrAttributeNotFound) {
				return nil, err
			}

			var plain stun.MappedAddress
			if err := plain.GetFrom(res); err != nil {
				return nil, err
			}

			return &net.UDPAddr{IP: plain.IP, Port: plain.Port}, nil
		}

		return &net.UDPAddr{IP: xor.IP, Port: xor.Port}, nil
	}
}
