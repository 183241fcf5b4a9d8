package geo

import (
	"context"

	"github.com/carverauto/netdiag/pkg/models"
)

//go:generate mockgen -destination=mock_lookup.go -package=geo github.com/carverauto/netdiag/pkg/geo Lookup

// Lookup resolves a public IP address to its location and operator.
type Lookup interface {
	Lookup(ctx context.Context, addr string) (models.GeoInfo, error)
}
