package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/ports"
)

var (
	latPrefix = regexp.MustCompile(`(?i)lat[itude]*\s*:\s*`)
	lngPrefix = regexp.MustCompile(`(?i)(?:lng|lon[gitude]*)\s*:\s*`)
	latLngRe  = regexp.MustCompile(`(-?\d+\.?\d*)\s*,\s*(-?\d+\.?\d*)`)
)

// ParseCoordinateInput reads a typed location such as "1.3521, 103.8198"
// or "lat: 1.3521, lng: 103.8198". ok is false when the text holds no
// coordinate pair or the pair is out of range.
func ParseCoordinateInput(s string) (domain.RoutePoint, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = latPrefix.ReplaceAllString(cleaned, "")
	cleaned = lngPrefix.ReplaceAllString(cleaned, "")

	m := latLngRe.FindStringSubmatch(cleaned)
	if m == nil {
		return domain.RoutePoint{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSuffix(m[2], "."), 64)
	if err1 != nil || err2 != nil {
		return domain.RoutePoint{}, false
	}

	p, err := domain.NewRoutePoint(lat, lng)
	if err != nil {
		return domain.RoutePoint{}, false
	}
	return p, true
}

// Locator turns typed input into a point: coordinates first, then the
// geocoder when one is configured.
type Locator struct {
	geocoder ports.Geocoder
}

func NewLocator(g ports.Geocoder) *Locator { return &Locator{geocoder: g} }

func (l *Locator) Locate(ctx context.Context, input string) (domain.RoutePoint, error) {
	if p, ok := ParseCoordinateInput(input); ok {
		return p, nil
	}
	if l == nil || l.geocoder == nil || strings.TrimSpace(input) == "" {
		return domain.RoutePoint{}, fmt.Errorf("invalid coordinates %q, use lat, lng (e.g. 1.3521, 103.8198): %w", input, domain.ErrInvalidCoordinate)
	}
	p, err := l.geocoder.Geocode(ctx, input)
	if err != nil {
		return domain.RoutePoint{}, fmt.Errorf("locate %q: %w", input, err)
	}
	return p, nil
}
