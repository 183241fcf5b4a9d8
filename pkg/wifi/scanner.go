package wifi

import (
	"context"
	"fmt"
	"runtime"

	"github.com/carverauto/netdiag/pkg/execx"
	"github.com/carverauto/netdiag/pkg/models"
)

// NewScanner returns the scanner for the host platform.
func NewScanner(runner execx.Runner) Scanner {
	switch runtime.GOOS {
	case "windows":
		return NewNetshScanner(runner)
	case "linux":
		return NewNmcliScanner(runner)
	default:
		return unsupported{goos: runtime.GOOS}
	}
}

type unsupported struct {
	goos string
}

func (u unsupported) Networks(context.Context) ([]models.WifiNetwork, error) {
	return nil, fmt.Errorf("%w: %s", errNoWifiTool, u.goos)
}

func (u unsupported) Current(context.Context) (*models.WifiConnection, error) {
	return nil, fmt.Errorf("%w: %s", errNoWifiTool, u.goos)
}
