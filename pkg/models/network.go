package models

import "time"

// NATType is the NAT behaviour inferred from comparing STUN mappings.
type NATType string

const (
	NATUnknown              NATType = "unknown"
	NATEndpointIndependent  NATType = "endpoint_independent"
	NATAddressPortDependent NATType = "address_port_dependent"
)

// PublicAddress is the address the rest of the internet sees.
type PublicAddress struct {
	IP      string  `json:"ip"`
	Port    int     `json:"port,omitempty"`
	Source  string  `json:"source"`
	NATType NATType `json:"nat_type,omitempty"`
	Geo     GeoInfo `json:"geo"`
}

// InterfaceRate is the measured throughput of one network interface.
type InterfaceRate struct {
	Name      string    `json:"name"`
	RxMbps    float64   `json:"rx_mbps"`
	TxMbps    float64   `json:"tx_mbps"`
	RxBytes   uint64    `json:"rx_bytes"`
	TxBytes   uint64    `json:"tx_bytes"`
	SampledAt time.Time `json:"sampled_at"`
}

// TrafficReport is the per-interface and total throughput over one
// sampling interval.
type TrafficReport struct {
	Interfaces      []InterfaceRate `json:"interfaces"`
	TotalRxMbps     float64         `json:"total_rx_mbps"`
	TotalTxMbps     float64         `json:"total_tx_mbps"`
	IntervalSeconds float64         `json:"interval_seconds"`
}
