package geocode

import (
	"context"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/logger"
	"quantaroute-demo/internal/platform/obs"
	"quantaroute-demo/internal/ports"
)

// CachedGeocoder answers from a cache and only asks Next on a miss. Cache
// failures are logged and fall through to Next.
type CachedGeocoder struct {
	Next  ports.Geocoder
	Cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{Next: next, Cache: cache}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (domain.RoutePoint, error) {
	p, ok, err := c.Cache.Get(ctx, query)
	if err != nil {
		logger.L().Warn("geocode cache read failed", "req_id", obs.RequestID(ctx), "err", err)
	}
	if ok {
		return p, nil
	}

	p, err = c.Next.Geocode(ctx, query)
	if err != nil {
		return domain.RoutePoint{}, err
	}
	if err := c.Cache.Put(ctx, query, p); err != nil {
		logger.L().Warn("geocode cache write failed", "req_id", obs.RequestID(ctx), "err", err)
	}
	return p, nil
}
