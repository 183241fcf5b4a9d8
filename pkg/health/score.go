package health

import "math"

// DNSScore maps a resolver latency onto tiers. Negative latency means the
// resolver could not be measured and scores zero.
func DNSScore(latencyMs float64, tiers []Tier, floor int) int {
	if latencyMs < 0 {
		return 0
	}

	for _, t := range tiers {
		if latencyMs < t.BelowMs {
			return t.Score
		}
	}

	return floor
}

// Composite combines the sub-measurements into an overall score in [0, 100].
func Composite(dnsScore int, gatewayOK, internetOK bool, lossPct float64, w Weights) int {
	total := float64(dnsScore)*w.DNS +
		boolScore(gatewayOK)*w.Gateway +
		boolScore(internetOK)*w.Internet +
		(100-clamp(lossPct, 0, 100))*w.Loss

	// truncate, tolerating float noise just below an integer
	return int(clamp(math.Floor(total+1e-9), 0, 100))
}

// Grade maps a score onto a letter.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func boolScore(ok bool) float64 {
	if ok {
		return 100
	}

	return 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
