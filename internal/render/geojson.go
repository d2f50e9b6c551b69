package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"quantaroute-demo/internal/domain"
)

// MapInput is what the map needs for one route set.
type MapInput struct {
	Routes       []domain.Route
	Profile      domain.Profile
	ClickedStart *domain.RoutePoint
	ClickedEnd   *domain.RoutePoint
}

// FeatureCollection builds the map layer for a route set. Every drawable
// route becomes a styled LineString; the selected one also gets its distance
// markers and, where the clicked points are off the road, connector lines.
// Optimized trips pass through waypoints and get no connectors. Routes that
// are not drawable are skipped.
func FeatureCollection(in MapInput) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, r := range in.Routes {
		if !r.Drawable() {
			continue
		}

		path := r.Geometry
		var connectors []Connector
		if r.IsSelected && r.Kind != domain.KindOptimized {
			connectors, path = Connectors(r.Geometry, in.ClickedStart, in.ClickedEnd)
		}

		f := geojson.NewFeature(path.LineString())
		f.ID = r.ID
		f.Properties["layer"] = "route"
		f.Properties["id"] = r.ID
		f.Properties["name"] = r.Name
		f.Properties["kind"] = string(r.Kind)
		f.Properties["index"] = i
		f.Properties["selected"] = r.IsSelected
		f.Properties["style"] = Style(r, i, in.Profile)
		f.Properties["distance_km"] = r.DistanceKm
		f.Properties["duration_min"] = r.DurationMin
		f.Properties["duration_text"] = FormatDuration(r.DurationMin)
		fc.Append(f)

		if !r.IsSelected {
			continue
		}
		for _, c := range connectors {
			cf := geojson.NewFeature(orb.LineString{c.From.Orb(), c.To.Orb()})
			cf.Properties["layer"] = "connector"
			cf.Properties["end"] = c.End
			cf.Properties["style"] = LineStyle{Color: ProfileColor(in.Profile), Weight: 4, Opacity: 0.7}
			fc.Append(cf)
		}
		for _, m := range DistanceMarkers(r.Geometry, r.DistanceKm) {
			mf := geojson.NewFeature(m.Position.Orb())
			mf.Properties["layer"] = "distance_marker"
			mf.Properties["distance_km"] = m.DistanceKm
			mf.Properties["label"] = m.Label
			fc.Append(mf)
		}
	}
	return fc
}

// Polyline encodes a path with precision 5 for clients that prefer it over
// GeoJSON.
func Polyline(g domain.RouteGeometry) string {
	return string(polyline.EncodeCoords(g.LatLngLists()))
}
