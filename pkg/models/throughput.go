package models

import "time"

// TransferDirection is the direction of a throughput measurement.
type TransferDirection string

const (
	DirectionDownload TransferDirection = "download"
	DirectionUpload   TransferDirection = "upload"
)

// TransferOutcome is the terminal state of a throughput run.
type TransferOutcome string

const (
	OutcomeCompleted TransferOutcome = "completed"
	OutcomeFailed    TransferOutcome = "failed"
	OutcomeCancelled TransferOutcome = "cancelled"
)

// ThroughputSample is a cumulative progress report emitted during a transfer.
// ElapsedSeconds runs from the start of the first server attempt; Bytes and
// RateMbps describe the transfer from ServerID.
type ThroughputSample struct {
	Direction      TransferDirection `json:"direction"`
	ServerID       string            `json:"server_id"`
	Bytes          int64             `json:"bytes"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
	RateMbps       float64           `json:"rate_mbps"`
}

// ThroughputResult is the final result of a download or upload run.
type ThroughputResult struct {
	RunID            string            `json:"run_id"`
	Direction        TransferDirection `json:"direction"`
	ServerID         string            `json:"server_id,omitempty"`
	ServerName       string            `json:"server_name,omitempty"`
	BytesTransferred int64             `json:"bytes_transferred"`
	ElapsedSeconds   float64           `json:"elapsed_seconds"`
	RateMbps         float64           `json:"rate_mbps"`
	Outcome          TransferOutcome   `json:"outcome"`
	Error            string            `json:"error,omitempty"`
	StartedAt        time.Time         `json:"started_at"`
}

// RateMbps converts a byte count over an elapsed time to megabits per second.
func RateMbps(bytes int64, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}

	return float64(bytes) * 8 / 1e6 / seconds
}
