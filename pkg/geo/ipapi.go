package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
	"golang.org/x/time/rate"
)

const (
	defaultIPAPIURL = "http://ip-api.com/json/"
	ipAPIFields     = "status,message,country,countryCode,region,city,isp,org,as,proxy,hosting"
)

type ipAPIResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Region      string `json:"region"`
	City        string `json:"city"`
	ISP         string `json:"isp"`
	Org         string `json:"org"`
	AS          string `json:"as"`
	Proxy       bool   `json:"proxy"`
	Hosting     bool   `json:"hosting"`
}

// HTTPLookup queries the ip-api.com JSON endpoint, pacing requests to stay
// inside the free tier.
type HTTPLookup struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPLookup returns a lookup against baseURL (the ip-api.com endpoint
// when empty) allowing perMinute requests per minute.
func NewHTTPLookup(baseURL string, perMinute int, client *http.Client) *HTTPLookup {
	if baseURL == "" {
		baseURL = defaultIPAPIURL
	}

	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}

	return &HTTPLookup{
		baseURL: baseURL,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (l *HTTPLookup) Lookup(ctx context.Context, addr string) (models.GeoInfo, error) {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return models.GeoInfo{}, fmt.Errorf("%w: %q", errInvalidAddr, addr)
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return models.GeoInfo{}, err
	}

	u, err := url.JoinPath(l.baseURL, ip.String())
	if err != nil {
		return models.GeoInfo{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?fields="+ipAPIFields, http.NoBody)
	if err != nil {
		return models.GeoInfo{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return models.GeoInfo{}, fmt.Errorf("%w: %w", errLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.GeoInfo{}, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.GeoInfo{}, fmt.Errorf("%w: %w", errLookupFailed, err)
	}

	if body.Status != "" && body.Status != "success" {
		return models.GeoInfo{}, fmt.Errorf("%w: %s", errLookupFailed, body.Message)
	}

	return models.GeoInfo{
		Country: body.Country,
		City:    body.City,
		ISP:     body.ISP,
		Org:     body.Org,
	}, nil
}
