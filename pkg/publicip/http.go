package publicip

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/netip"
	"strings"

	"github.com/carverauto/netdiag/pkg/models"
)

const maxEchoBody = 256

// DefaultEchoURLs are plain-text services that answer with the caller's
// address.
var DefaultEchoURLs = []string{
	"https://api.ipify.org",
	"https://ifconfig.me/ip",
	"https://icanhazip.com",
}

// HTTPResolver asks plain-text echo services for the caller's address. The
// first valid answer wins.
type HTTPResolver struct {
	urls   []string
	client *http.Client
}

func NewHTTPResolver(urls []string, client *http.Client) *HTTPResolver {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPResolver{urls: urls, client: client}
}

func (r *HTTPResolver) Resolve(ctx context.Context) (models.PublicAddress, error) {
	if len(r.urls) == 0 {
		return models.PublicAddress{}, errNoServers
	}

	var lastErr error

	for _, u := range r.urls {
		addr, err := r.fetch(ctx, u)
		if err == nil {
			return models.PublicAddress{IP: addr.String(), Source: u}, nil
		}

		log.Printf("Public IP lookup via %s failed: %v", u, err)

		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return models.PublicAddress{}, fmt.Errorf("%w: %w", errAllFailed, lastErr)
}

func (r *HTTPResolver) fetch(ctx context.Context, url string) (netip.Addr, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return netip.Addr{}, err
	}

	req.Header.Set("Accept", "text/plain")

	resp, err := r.client.Do(req)
	if err != nil {
		return netip.Addr{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return netip.Addr{}, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEchoBody))
	if err != nil {
		return netip.Addr{}, err
	}

	text := strings.TrimSpace(string(body))

	addr, err := netip.ParseAddr(text)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", errInvalidAddress, text)
	}

	return addr.Unmap(), nil
}
