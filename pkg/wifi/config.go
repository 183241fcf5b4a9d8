package wifi

import (
	"fmt"

	"github.com/carverauto/netdiag/pkg/execx"
)

// Tool names a WiFi inventory source.
type Tool string

const (
	ToolAuto  Tool = "auto"
	ToolNmcli Tool = "nmcli"
	ToolNetsh Tool = "netsh"
)

// Config selects the scanning tool.
type Config struct {
	Tool Tool `json:"tool" yaml:"tool"`
}

func (c *Config) Validate() error {
	switch c.Tool {
	case "":
		c.Tool = ToolAuto
	case ToolAuto, ToolNmcli, ToolNetsh:
	default:
		return fmt.Errorf("%w: %q", errNoWifiTool, c.Tool)
	}

	return nil
}

// Scanner builds the scanner selected by the config.
func (c *Config) Scanner(runner execx.Runner) Scanner {
	switch c.Tool {
	case ToolNmcli:
		return NewNmcliScanner(runner)
	case ToolNetsh:
		return NewNetshScanner(runner)
	case ToolAuto:
	}

	return NewScanner(runner)
}
