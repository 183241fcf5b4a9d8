package wifi

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/carverauto/netdiag/pkg/execx"
	"github.com/carverauto/netdiag/pkg/models"
)

// NetshScanner reads the Windows WLAN service through netsh.
type NetshScanner struct {
	runner execx.Runner
}

func NewNetshScanner(runner execx.Runner) *NetshScanner {
	return &NetshScanner{runner: runner}
}

func (s *NetshScanner) Networks(ctx context.Context) ([]models.WifiNetwork, error) {
	out, err := s.runner.Output(ctx, "netsh", "wlan", "show", "networks", "mode=bssid")
	if err != nil {
		return nil, err
	}

	return ParseNetshNetworks(out), nil
}

func (s *NetshScanner) Current(ctx context.Context) (*models.WifiConnection, error) {
	out, err := s.runner.Output(ctx, "netsh", "wlan", "show", "interfaces")
	if err != nil {
		return nil, err
	}

	return ParseNetshInterfaces(out), nil
}

func keyValue(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}

	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// ParseNetshNetworks parses `netsh wlan show networks mode=bssid`. Each
// BSSID becomes its own record.
func ParseNetshNetworks(out string) []models.WifiNetwork {
	var (
		networks []models.WifiNetwork
		ssid     string
		security string
		cur      *models.WifiNetwork
	)

	flush := func() {
		if cur != nil {
			cur.Band = BandForChannel(cur.Channel)
			networks = append(networks, *cur)
			cur = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(out))

	for scanner.Scan() {
		key, value, ok := keyValue(scanner.Text())
		if !ok {
			continue
		}

		switch {
		case strings.HasPrefix(key, "SSID"):
			flush()

			ssid, security = value, ""
		case key == "Authentication":
			security = value
		case strings.HasPrefix(key, "BSSID"):
			flush()

			cur = &models.WifiNetwork{SSID: ssid, BSSID: strings.ToLower(value), Security: security}
		case key == "Signal" && cur != nil:
			cur.SignalPercent = percent(value)
		case key == "Channel" && cur != nil:
			cur.Channel, _ = strconv.Atoi(value)
		}
	}

	flush()

	return networks
}

// ParseNetshInterfaces parses `netsh wlan show interfaces`. It returns nil
// when no interface is connected.
func ParseNetshInterfaces(out string) *models.WifiConnection {
	var (
		conn      models.WifiConnection
		connected bool
	)

	scanner := bufio.NewScanner(strings.NewReader(out))

	for scanner.Scan() {
		key, value, ok := keyValue(scanner.Text())
		if !ok {
			continue
		}

		switch key {
		case "State":
			connected = strings.EqualFold(value, "connected")
		case "SSID":
			conn.SSID = value
		case "BSSID", "AP BSSID":
			conn.BSSID = strings.ToLower(value)
		case "Channel":
			conn.Channel, _ = strconv.Atoi(value)
		case "Signal":
			conn.SignalPercent = percent(value)
		case "Receive rate (Mbps)":
			conn.RxRateMbps = leadingInt(value)
		case "Transmit rate (Mbps)":
			conn.TxRateMbps = leadingInt(value)
		}
	}

	if !connected || conn.SSID == "" {
		return nil
	}

	conn.Band = BandForChannel(conn.Channel)

	return &conn
}

func percent(s string) int {
	n, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return n
}
