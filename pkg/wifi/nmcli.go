package wifi

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/carverauto/netdiag/pkg/execx"
	"github.com/carverauto/netdiag/pkg/models"
)

var nmcliArgs = []string{"-t", "-f", "IN-USE,SSID,BSSID,SIGNAL,CHAN,SECURITY,RATE", "device", "wifi", "list"}

// NmcliScanner reads the NetworkManager scan list.
type NmcliScanner struct {
	runner execx.Runner
}

func NewNmcliScanner(runner execx.Runner) *NmcliScanner {
	return &NmcliScanner{runner: runner}
}

func (s *NmcliScanner) Networks(ctx context.Context) ([]models.WifiNetwork, error) {
	networks, _, err := s.scan(ctx)
	return networks, err
}

func (s *NmcliScanner) Current(ctx context.Context) (*models.WifiConnection, error) {
	_, current, err := s.scan(ctx)
	return current, err
}

func (s *NmcliScanner) scan(ctx context.Context) ([]models.WifiNetwork, *models.WifiConnection, error) {
	out, err := s.runner.Output(ctx, "nmcli", nmcliArgs...)
	if err != nil {
		return nil, nil, err
	}

	return ParseNmcli(out)
}

// ParseNmcli parses terse nmcli output with the IN-USE, SSID, BSSID,
// SIGNAL, CHAN, SECURITY and RATE fields.
func ParseNmcli(out string) ([]models.WifiNetwork, *models.WifiConnection, error) {
	var (
		networks []models.WifiNetwork
		current  *models.WifiConnection
	)

	scanner := bufio.NewScanner(strings.NewReader(out))

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		fields := splitTerse(line)
		if len(fields) < 7 {
			return nil, nil, fmt.Errorf("%w: %q", errMalformedField, line)
		}

		signal, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: signal %q", errMalformedField, fields[3])
		}

		channel, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: channel %q", errMalformedField, fields[4])
		}

		n := models.WifiNetwork{
			SSID:          fields[1],
			BSSID:         strings.ToLower(fields[2]),
			SignalPercent: signal,
			Channel:       channel,
			Band:          BandForChannel(channel),
			Security:      fields[5],
		}

		networks = append(networks, n)

		if fields[0] == "*" && current == nil {
			rate := leadingInt(fields[6])
			current = &models.WifiConnection{
				SSID:          n.SSID,
				BSSID:         n.BSSID,
				SignalPercent: n.SignalPercent,
				Channel:       n.Channel,
				Band:          n.Band,
				RxRateMbps:    rate,
				TxRateMbps:    rate,
			}
		}
	}

	return networks, current, scanner.Err()
}

// splitTerse splits nmcli terse output on unescaped colons.
func splitTerse(line string) []string {
	var (
		fields []string
		b      strings.Builder
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == '\\' && i+1 < len(line):
			i++
			b.WriteByte(line[i])
		case c == ':':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}

	return append(fields, b.String())
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, _ := strconv.Atoi(s[:end])

	return n
}
