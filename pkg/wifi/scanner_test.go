package wifi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netdiag/pkg/execx"
	"github.com/carverauto/netdiag/pkg/models"
)

const nmcliOutput = ` :Cafe:11\:22\:33\:44\:55\:66:40:1:WPA2:130 Mbit/s
*:Home\:Net:AA\:BB\:CC\:DD\:EE\:FF:78:36:WPA2 WPA3:540 Mbit/s
 :Guest:AA\:BB\:CC\:DD\:EE\:00:55:6::65 Mbit/s
`

func TestParseNmcli(t *testing.T) {
	networks, current, err := ParseNmcli(nmcliOutput)
	require.NoError(t, err)
	require.Len(t, networks, 3)

	assert.Equal(t, "Cafe", networks[0].SSID)
	assert.Equal(t, "11:22:33:44:55:66", networks[0].BSSID)
	assert.Equal(t, models.Band24GHz, networks[0].Band)
	assert.Equal(t, "Home:Net", networks[1].SSID)
	assert.Equal(t, models.Band5GHz, networks[1].Band)
	assert.Empty(t, networks[2].Security)

	require.NotNil(t, current)
	assert.Equal(t, "Home:Net", current.SSID)
	assert.Equal(t, 36, current.Channel)
	assert.Equal(t, 540, current.RxRateMbps)
}

func TestParseNmcliMalformed(t *testing.T) {
	_, _, err := ParseNmcli(" :x:aa:notanumber:6:WPA2:1 Mbit/s\n")
	require.ErrorIs(t, err, errMalformedField)

	_, _, err = ParseNmcli("too:few\n")
	require.ErrorIs(t, err, errMalformedField)
}

const netshNetworks = `
Interface name : Wi-Fi
There are 2 networks currently visible.

SSID 1 : HomeNet
    Network type            : Infrastructure
    Authentication          : WPA2-Personal
    Encryption              : CCMP
    BSSID 1                 : AA:BB:CC:DD:EE:FF
         Signal             : 78%
         Radio type         : 802.11ac
         Channel            : 36
    BSSID 2                 : AA:BB:CC:DD:EE:01
         Signal             : 64%
         Radio type         : 802.11n
         Channel            : 6

SSID 2 : Cafe
    Network type            : Infrastructure
    Authentication          : Open
    Encryption              : None
    BSSID 1                 : 11:22:33:44:55:66
         Signal             : 30%
         Channel            : 11
`

func TestParseNetshNetworks(t *testing.T) {
	networks := ParseNetshNetworks(netshNetworks)
	require.Len(t, networks, 3)

	assert.Equal(t, models.WifiNetwork{
		SSID: "HomeNet", BSSID: "aa:bb:cc:dd:ee:ff", SignalPercent: 78,
		Channel: 36, Band: models.Band5GHz, Security: "WPA2-Personal",
	}, networks[0])
	assert.Equal(t, "HomeNet", networks[1].SSID)
	assert.Equal(t, 6, networks[1].Channel)
	assert.Equal(t, "Cafe", networks[2].SSID)
	assert.Equal(t, "Open", networks[2].Security)
	assert.Equal(t, 30, networks[2].SignalPercent)
}

const netshInterfaces = `
There is 1 interface on the system:

    Name                   : Wi-Fi
    State                  : connected
    SSID                   : HomeNet
    BSSID                  : aa:bb:cc:dd:ee:ff
    Radio type             : 802.11ac
    Channel                : 36
    Receive rate (Mbps)    : 866.7
    Transmit rate (Mbps)   : 780
    Signal                 : 91%
`

func TestParseNetshInterfaces(t *testing.T) {
	conn := ParseNetshInterfaces(netshInterfaces)
	require.NotNil(t, conn)

	assert.Equal(t, "HomeNet", conn.SSID)
	assert.Equal(t, 36, conn.Channel)
	assert.Equal(t, 866, conn.RxRateMbps)
	assert.Equal(t, 780, conn.TxRateMbps)
	assert.Equal(t, 91, conn.SignalPercent)
	assert.Equal(t, models.Band5GHz, conn.Band)

	assert.Nil(t, ParseNetshInterfaces("    State                  : disconnected\n"))
}

func TestNmcliScanner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := execx.NewMockRunner(ctrl)
	runner.EXPECT().Output(gomock.Any(), "nmcli", gomock.Any()).Return(nmcliOutput, nil).Times(2)

	s := NewNmcliScanner(runner)

	networks, err := s.Networks(context.Background())
	require.NoError(t, err)
	assert.Len(t, networks, 3)

	current, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Home:Net", current.SSID)
}

func TestConfigScanner(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ToolAuto, cfg.Tool)

	cfg = Config{Tool: ToolNetsh}
	require.NoError(t, cfg.Validate())
	assert.IsType(t, &NetshScanner{}, cfg.Scanner(execx.NewOSRunner()))

	cfg = Config{Tool: "airport"}
	require.ErrorIs(t, cfg.Validate(), errNoWifiTool)
}
