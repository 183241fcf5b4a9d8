package geo

import "net/netip"

// privatePrefixes are ranges that never route on the public internet.
var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fc00::/7"),
	netip.MustParsePrefix("fe80::/10"),
}

// IsPrivate reports whether addr is a loopback, link-local, RFC 1918,
// carrier-grade NAT or IPv6 unique local address. Unparseable input is not
// private.
func IsPrivate(addr string) bool {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}

	ip = ip.Unmap()

	for _, p := range privatePrefixes {
		if p.Contains(ip) {
			return true
		}
	}

	return false
}
