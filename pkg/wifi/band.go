package wifi

import "github.com/carverauto/netdiag/pkg/models"

const (
	minChannel24 = 1
	maxChannel24 = 13
	min5GHz      = 30
	overlap      = 2
)

// BandForChannel maps a channel number onto its band.
func BandForChannel(channel int) models.Band {
	switch {
	case channel >= minChannel24 && channel <= maxChannel24:
		return models.Band24GHz
	case channel > min5GHz:
		return models.Band5GHz
	default:
		return models.BandUnknown
	}
}

// SignalQuality buckets a signal percentage.
func SignalQuality(percent int) string {
	switch {
	case percent >= 80:
		return "excellent"
	case percent >= 60:
		return "good"
	case percent >= 40:
		return "fair"
	default:
		return "weak"
	}
}
