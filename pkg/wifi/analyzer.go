// Package wifi analyzes WiFi channel occupancy and recommends channels.
package wifi

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/carverauto/netdiag/pkg/models"
)

// nonOverlapping24 are the 2.4 GHz channels that do not overlap each other.
var nonOverlapping24 = []int{1, 6, 11}

// Analyze builds a channel analysis from a scan. current may be nil.
func Analyze(networks []models.WifiNetwork, current *models.WifiConnection) models.ChannelAnalysis {
	analysis := models.ChannelAnalysis{
		Occupancy24:     make(map[int]int, maxChannel24),
		Occupancy5:      make(map[int]int),
		Networks:        networks,
		Current:         current,
		NetworksScanned: len(networks),
	}

	for ch := minChannel24; ch <= maxChannel24; ch++ {
		analysis.Occupancy24[ch] = 0
	}

	for _, n := range networks {
		switch BandForChannel(n.Channel) {
		case models.Band24GHz:
			for ch := max(minChannel24, n.Channel-overlap); ch <= min(maxChannel24, n.Channel+overlap); ch++ {
				analysis.Occupancy24[ch]++
			}
		case models.Band5GHz:
			analysis.Occupancy5[n.Channel]++
		case models.BandUnknown:
		}
	}

	analysis.BestChannel24 = bestOf(analysis.Occupancy24, nonOverlapping24)
	analysis.BestChannel5 = bestOf(analysis.Occupancy5, sortedKeys(analysis.Occupancy5))

	if current == nil || current.Channel == 0 {
		analysis.Congestion = models.CongestionUnknown
		analysis.Recommendation = fmt.Sprintf("Not connected; channel %d is the least crowded 2.4 GHz channel", analysis.BestChannel24)

		return analysis
	}

	analysis.CurrentChannel = current.Channel

	occupancy, best := analysis.Occupancy24[current.Channel], analysis.BestChannel24
	if BandForChannel(current.Channel) == models.Band5GHz {
		occupancy, best = analysis.Occupancy5[current.Channel], analysis.BestChannel5
	}

	analysis.Congestion = Tier(occupancy)
	analysis.Recommendation = Recommend(current.Channel == best, analysis.Congestion, occupancy, best)

	return analysis
}

// Tier buckets the number of networks sharing a channel.
func Tier(occupancy int) models.CongestionLevel {
	switch {
	case occupancy <= 2:
		return models.CongestionLow
	case occupancy <= 5:
		return models.CongestionMedium
	default:
		return models.CongestionHigh
	}
}

// Recommend picks advice for the current channel.
func Recommend(isBest bool, level models.CongestionLevel, occupancy, best int) string {
	switch {
	case isBest && level == models.CongestionLow:
		return "Current channel is already the best choice"
	case !isBest && occupancy > 3:
		return fmt.Sprintf("Switch to channel %d; the current channel is crowded", best)
	case level == models.CongestionHigh:
		return fmt.Sprintf("Channel is heavily congested; switch to channel %d or use 5 GHz", best)
	default:
		return "Current channel is in good shape"
	}
}

// bestOf returns the candidate with the lowest occupancy, preferring the
// lower channel on ties. It returns 0 when there are no candidates.
func bestOf(occupancy map[int]int, candidates []int) int {
	best, bestCount := 0, 0

	for _, ch := range candidates {
		count := occupancy[ch]
		if best == 0 || count < bestCount || (count == bestCount && ch < best) {
			best, bestCount = ch, count
		}
	}

	return best
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Ints(keys)

	return keys
}

// Analyzer scans and analyzes in one step.
type Analyzer struct {
	scanner Scanner
}

func NewAnalyzer(scanner Scanner) *Analyzer {
	return &Analyzer{scanner: scanner}
}

// Run scans the air and analyzes it. Scan failures are reported in the
// analysis Error field; a failure to read the current association only
// drops the per-channel advice.
func (a *Analyzer) Run(ctx context.Context) models.ChannelAnalysis {
	networks, err := a.scanner.Networks(ctx)
	if err != nil {
		log.Printf("WiFi scan failed: %v", err)

		analysis := Analyze(nil, nil)
		analysis.Error = fmt.Errorf("%w: %w", errScanFailed, err).Error()

		return analysis
	}

	current, err := a.scanner.Current(ctx)
	if err != nil {
		log.Printf("Failed to read current WiFi connection: %v", err)

		current = nil
	}

	if current != nil {
		current.Band = BandForChannel(current.Channel)
		current.Quality = SignalQuality(current.SignalPercent)
	}

	return Analyze(networks, current)
}
