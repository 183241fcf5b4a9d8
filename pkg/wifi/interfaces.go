package wifi

import (
	"context"

	"github.com/carverauto/netdiag/pkg/models"
)

//go:generate mockgen -destination=mock_scanner.go -package=wifi github.com/carverauto/netdiag/pkg/wifi Scanner

// Scanner reads the WiFi inventory from the host.
type Scanner interface {
	// Networks lists the access points in range.
	Networks(ctx context.Context) ([]models.WifiNetwork, error)
	// Current returns the active association, or nil when not associated.
	Current(ctx context.Context) (*models.WifiConnection, error)
}
