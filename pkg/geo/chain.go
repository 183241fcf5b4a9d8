package geo

import (
	"context"
	"errors"

	"github.com/carverauto/netdiag/pkg/models"
)

// Chain tries each lookup in order and returns the first answer.
type Chain []Lookup

func (c Chain) Lookup(ctx context.Context, addr string) (models.GeoInfo, error) {
	if len(c) == 0 {
		return models.GeoInfo{}, errNoProvider
	}

	var errs []error

	for _, l := range c {
		info, err := l.Lookup(ctx, addr)
		if err == nil {
			return info, nil
		}

		if ctx.Err() != nil {
			return models.GeoInfo{}, ctx.Err()
		}

		errs = append(errs, err)
	}

	return models.GeoInfo{}, errors.Join(errs...)
}
