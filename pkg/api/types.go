package api

import (
	"net/http"

	"github.com/carverauto/netdiag/pkg/models"
)

// Deps are the components behind the endpoints. Endpoints whose component
// is nil answer 503.
type Deps struct {
	Health     HealthSource
	Resolvers  ResolverBenchmark
	MTU        MTUDiscoverer
	Wifi       WifiAnalyzer
	PublicIP   PublicIPDetector
	Traffic    TrafficSampler
	NewTracer  func() Tracer
	Speed      SpeedMeter
	Throughput ThroughputRecorder
	Metrics    http.Handler
}

// Message types sent over streaming endpoints.
const (
	MessageHop      = "hop"
	MessageProgress = "progress"
	MessageResult   = "result"
	MessageDone     = "done"
	MessageError    = "error"
)

// StreamMessage is one frame of a websocket stream.
type StreamMessage struct {
	Type   string                   `json:"type"`
	Hop    *models.TraceHop         `json:"hop,omitempty"`
	Sample *models.ThroughputSample `json:"sample,omitempty"`
	Result *models.ThroughputResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
