package models

// Band is a WiFi frequency band.
type Band string

const (
	Band24GHz   Band = "2.4GHz"
	Band5GHz    Band = "5GHz"
	BandUnknown Band = "unknown"
)

// WifiNetwork is one access point seen in a scan.
type WifiNetwork struct {
	SSID          string `json:"ssid"`
	BSSID         string `json:"bssid"`
	SignalPercent int    `json:"signal_percent"`
	Channel       int    `json:"channel"`
	Band          Band   `json:"band"`
	Security      string `json:"security,omitempty"`
}

// WifiConnection is the interface's current association.
type WifiConnection struct {
	SSID          string `json:"ssid"`
	BSSID         string `json:"bssid,omitempty"`
	SignalPercent int    `json:"signal_percent"`
	Channel       int    `json:"channel"`
	Band          Band   `json:"band"`
	RxRateMbps    int    `json:"rx_rate_mbps,omitempty"`
	TxRateMbps    int    `json:"tx_rate_mbps,omitempty"`
	Quality       string `json:"quality,omitempty"`
}

// CongestionLevel buckets how crowded a channel is.
type CongestionLevel string

const (
	CongestionLow     CongestionLevel = "low"
	CongestionMedium  CongestionLevel = "medium"
	CongestionHigh    CongestionLevel = "high"
	// CongestionUnknown is reported when there is no current channel to rate.
	CongestionUnknown CongestionLevel = "unknown"
)

// ChannelAnalysis is the result of a channel congestion analysis.
type ChannelAnalysis struct {
	Occupancy24     map[int]int     `json:"occupancy_24"`
	Occupancy5      map[int]int     `json:"occupancy_5"`
	Networks        []WifiNetwork   `json:"networks"`
	Current         *WifiConnection `json:"current,omitempty"`
	CurrentChannel  int             `json:"current_channel,omitempty"`
	BestChannel24   int             `json:"best_channel_24"`
	BestChannel5    int             `json:"best_channel_5,omitempty"`
	Congestion      CongestionLevel `json:"congestion"`
	Recommendation  string          `json:"recommendation"`
	NetworksScanned int             `json:"networks_scanned"`
	Error           string          `json:"error,omitempty"`
}
