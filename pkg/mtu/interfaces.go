package mtu

import "context"

//go:generate mockgen -destination=mock_prober.go -package=mtu github.com/carverauto/netdiag/pkg/mtu FragmentProber

// FragmentProber sends one probe of payload bytes with the don't-fragment
// bit set.
type FragmentProber interface {
	ProbeDF(ctx context.Context, target string, payload int) Outcome
}
