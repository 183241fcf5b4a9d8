package traceroute

import (
	"net/netip"
	"strconv"
	"strings"
)

const maxProbeColumns = 3

// ParsedHop is one hop line as printed by the tracer, before enrichment.
type ParsedHop struct {
	Number  int
	Address string
	// Samples holds the latencies of the probes that were answered.
	Samples []float64
	// Timeouts counts the probes printed as "*".
	Timeouts int
}

// LineParser turns a line of tracer output into a hop. Lines that are not
// hops (banners, blank lines, trailers) report false.
type LineParser interface {
	ParseLine(line string) (ParsedHop, bool)
}

// HopParser understands both `traceroute -n` and `tracert -d` output:
//
//	 3  10.0.0.1  1.204 ms  * 1.517 ms
//	 3    12 ms    <1 ms     *     10.0.0.1
//	 4     *        *        *     Request timed out.
//
// The first field is the hop number; "*" marks a lost probe; a number
// followed by "ms" is a latency; the first token that parses as an IP
// address (optionally wrapped in brackets or parentheses) is the hop.
type HopParser struct{}

func (HopParser) ParseLine(line string) (ParsedHop, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ParsedHop{}, false
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil || number <= 0 {
		return ParsedHop{}, false
	}

	hop := ParsedHop{Number: number}

	for i := 1; i < len(fields); i++ {
		tok := fields[i]

		if tok == "*" {
			hop.Timeouts++
			continue
		}

		if ms, consumed, ok := parseLatency(fields, i); ok {
			if len(hop.Samples) < maxProbeColumns {
				hop.Samples = append(hop.Samples, ms)
			}

			i += consumed

			continue
		}

		if hop.Address == "" {
			if addr, ok := parseAddress(tok); ok {
				hop.Address = addr
			}
		}
	}

	if hop.Address == "" && hop.Timeouts == 0 && len(hop.Samples) == 0 {
		return ParsedHop{}, false
	}

	return hop, true
}

// parseLatency reads "12 ms", "12ms", "<1 ms" or "0.512 ms" starting at
// fields[i]. consumed is the number of extra fields used.
func parseLatency(fields []string, i int) (float64, int, bool) {
	tok := strings.TrimPrefix(fields[i], "<")
	consumed := 0

	switch {
	case strings.HasSuffix(tok, "ms"):
		tok = strings.TrimSuffix(tok, "ms")
	case i+1 < len(fields) && fields[i+1] == "ms":
		consumed = 1
	default:
		return 0, 0, false
	}

	ms, err := strconv.ParseFloat(tok, 64)
	if err != nil || ms < 0 {
		return 0, 0, false
	}

	return ms, consumed, true
}

func parseAddress(tok string) (string, bool) {
	tok = strings.Trim(tok, "[]()")

	addr, err := netip.ParseAddr(tok)
	if err != nil {
		return "", false
	}

	return addr.Unmap().String(), true
}
