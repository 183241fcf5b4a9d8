package models

import "strings"

// GeoInfo describes where a public address is located.
type GeoInfo struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	ISP     string `json:"isp,omitempty"`
	Org     string `json:"org,omitempty"`
}

// Empty reports whether no location data is present.
func (g GeoInfo) Empty() bool {
	return g == GeoInfo{}
}

// TraceHop is one hop of a traceroute.
type TraceHop struct {
	Number    int       `json:"number"`
	Address   string    `json:"address,omitempty"`
	LatencyMs float64   `json:"latency_ms"`
	Samples   []float64 `json:"samples,omitempty"`
	IsTimeout bool      `json:"is_timeout"`
	IsPrivate bool      `json:"is_private"`
	Geo       GeoInfo   `json:"geo"`
}

// Location renders a short human readable location for the hop.
func (h TraceHop) Location() string {
	switch {
	case h.IsPrivate:
		return "LAN"
	case h.Geo.Empty():
		return "-"
	}

	parts := make([]string, 0, 2)

	for _, p := range []string{h.Geo.Country, h.Geo.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		return "-"
	}

	return strings.Join(parts, " ")
}
