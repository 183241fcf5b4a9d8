package models

import "time"

// HealthReport is a composite view of local network health.
type HealthReport struct {
	ID                string    `json:"id,omitempty"`
	DNSLatencyMs      float64   `json:"dns_latency_ms"`
	DNSScore          int       `json:"dns_score"`
	Gateway           string    `json:"gateway,omitempty"`
	GatewayReachable  bool      `json:"gateway_reachable"`
	GatewayLatencyMs  float64   `json:"gateway_latency_ms"`
	InternetReachable bool      `json:"internet_reachable"`
	InternetLatencyMs float64   `json:"internet_latency_ms"`
	PacketLossPct     float64   `json:"packet_loss_pct"`
	Score             int       `json:"score"`
	Grade             string    `json:"grade"`
	Error             string    `json:"error,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// ResolverResult is the latency measured against one DNS resolver.
type ResolverResult struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	LatencyMs float64 `json:"latency_ms"`
	LossPct   float64 `json:"loss_pct"`
}

// MTUResult is the outcome of a path MTU search.
type MTUResult struct {
	Target    string `json:"target"`
	MTU       int    `json:"mtu"`
	Probes    int    `json:"probes"`
	Confirmed bool   `json:"confirmed"`
}
