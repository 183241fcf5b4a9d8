package geo

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/oschwald/geoip2-golang"
)

// MaxMindLookup answers from local GeoLite2 City and ASN databases, so no
// request leaves the host.
type MaxMindLookup struct {
	city *geoip2.Reader
	asn  *geoip2.Reader
}

// OpenMaxMind opens the databases at cityPath and asnPath. Either may be
// empty but not both.
func OpenMaxMind(cityPath, asnPath string) (*MaxMindLookup, error) {
	if cityPath == "" && asnPath == "" {
		return nil, errNoProvider
	}

	l := &MaxMindLookup{}

	if cityPath != "" {
		city, err := geoip2.Open(cityPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open city database: %w", err)
		}

		l.city = city
	}

	if asnPath != "" {
		asn, err := geoip2.Open(asnPath)
		if err != nil {
			_ = l.Close()

			return nil, fmt.Errorf("failed to open ASN database: %w", err)
		}

		l.asn = asn
	}

	return l, nil
}

func (l *MaxMindLookup) Lookup(_ context.Context, addr string) (models.GeoInfo, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return models.GeoInfo{}, fmt.Errorf("%w: %q", errInvalidAddr, addr)
	}

	var info models.GeoInfo

	if l.city != nil {
		rec, err := l.city.City(ip)
		if err != nil {
			return models.GeoInfo{}, fmt.Errorf("%w: %w", errLookupFailed, err)
		}

		info.Country = rec.Country.Names["en"]
		info.City = rec.City.Names["en"]
	}

	if l.asn != nil {
		rec, err := l.asn.ASN(ip)
		if err != nil {
			return models.GeoInfo{}, fmt.Errorf("%w: %w", errLookupFailed, err)
		}

		info.ISP = rec.AutonomousSystemOrganization
		if rec.AutonomousSystemNumber != 0 {
			info.Org = fmt.Sprintf("AS%d %s", rec.AutonomousSystemNumber, rec.AutonomousSystemOrganization)
		}
	}

	if info.Empty() {
		return info, fmt.Errorf("%w: %s", errNotFound, addr)
	}

	return info, nil
}

func (l *MaxMindLookup) Close() error {
	var errs []error

	if l.city != nil {
		errs = append(errs, l.city.Close())
	}

	if l.asn != nil {
		errs = append(errs, l.asn.Close())
	}

	return errors.Join(errs...)
}
