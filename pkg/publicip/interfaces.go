package publicip

import (
	"context"

	"github.com/carverauto/netdiag/pkg/models"
)

//go:generate mockgen -destination=mock_resolver.go -package=publicip github.com/carverauto/netdiag/pkg/publicip Resolver

// Resolver discovers the public address of this host.
type Resolver interface {
	Resolve(ctx context.Context) (models.PublicAddress, error)
}
