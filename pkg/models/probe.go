package models

import "time"

// ProbeSample is the outcome of a single reachability probe.
type ProbeSample struct {
	Target    string    `json:"target"`
	Success   bool      `json:"success"`
	RTTMs     float64   `json:"rtt_ms"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LatencyStats summarizes a sequence of probes against one target.
// Min, max, average and jitter are computed over successful samples only and
// hold Unavailable when no probe succeeded.
type LatencyStats struct {
	Target       string  `json:"target"`
	AvgMs        float64 `json:"avg_ms"`
	MinMs        float64 `json:"min_ms"`
	MaxMs        float64 `json:"max_ms"`
	JitterMs     float64 `json:"jitter_ms"`
	LossPct      float64 `json:"loss_pct"`
	SuccessCount int     `json:"success_count"`
	TotalCount   int     `json:"total_count"`
}

// Available reports whether at least one probe succeeded.
func (s LatencyStats) Available() bool {
	return s.SuccessCount > 0
}
