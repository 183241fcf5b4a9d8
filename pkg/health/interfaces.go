package health

import "context"

//go:generate mockgen -destination=mock_gateway.go -package=health github.com/carverauto/netdiag/pkg/health GatewayResolver

// GatewayResolver finds the default IPv4 gateway of the host.
type GatewayResolver interface {
	DefaultGateway(ctx context.Context) (string, error)
}
