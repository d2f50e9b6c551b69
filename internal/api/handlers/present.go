package handlers

import (
	"quantaroute-demo/internal/api/dto"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/geometry"
	"quantaroute-demo/internal/ports"
	"quantaroute-demo/internal/render"
	"quantaroute-demo/internal/services"
)

func presentRoutes(snap services.Snapshot) dto.RoutesResponse {
	resp := dto.RoutesResponse{
		SessionID:            snap.SessionID,
		Profile:              string(snap.Profile),
		ProfileName:          snap.Profile.DisplayName(),
		Kind:                 string(snap.Kind),
		Routes:               make([]dto.RouteResponse, 0, len(snap.Routes)),
		SelectedIndex:        snap.SelectedIndex,
		NoAlternatives:       snap.NoAlternatives,
		AlternativesDisabled: snap.AlternativesDisabled,
		Degraded:             snap.Degraded,
		Cached:               snap.Cached,
		ComputationMethod:    snap.ComputationMethod,
		ComputeTimeMs:        snap.ComputeTimeMs,
		Status:               snap.Status,
		Markers:              []dto.DistanceMarker{},
		Connectors:           []dto.Connector{},
		Waypoints:            presentSlots(snap.Waypoints),
	}
	for _, d := range snap.Diagnostics {
		resp.Warnings = append(resp.Warnings, d.Component+": "+d.Message)
	}

	var paths []domain.RouteGeometry
	for i, r := range snap.Routes {
		resp.Routes = append(resp.Routes, presentRoute(r, i, snap.Profile))
		if r.Drawable() {
			paths = append(paths, r.Geometry)
		}
		if !r.IsSelected {
			continue
		}
		for _, m := range render.DistanceMarkers(r.Geometry, r.DistanceKm) {
			resp.Markers = append(resp.Markers, dto.DistanceMarker{
				Lat: m.Position.Lat, Lng: m.Position.Lng, DistanceKm: m.DistanceKm, Label: m.Label,
			})
		}
		if r.Kind != domain.KindOptimized {
			conns, _ := render.Connectors(r.Geometry, snap.ClickedStart, snap.ClickedEnd)
			for _, c := range conns {
				resp.Connectors = append(resp.Connectors, dto.Connector{
					From: c.From.LatLngList(), To: c.To.LatLngList(), End: c.End,
				})
			}
		}
	}
	if b, ok := geometry.Bounds(paths...); ok {
		resp.Bounds = []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
	}
	return resp
}

func presentRoute(r domain.Route, index int, p domain.Profile) dto.RouteResponse {
	style := render.Style(r, index, p)
	out := dto.RouteResponse{
		ID:                  r.ID,
		Kind:                string(r.Kind),
		Name:                r.Name,
		Description:         r.Description,
		Selected:            r.IsSelected,
		Drawable:            r.Drawable(),
		DistanceKm:          r.DistanceKm,
		DurationMin:         r.DurationMin,
		DistanceText:        render.FormatDistance(r.DistanceKm),
		DurationText:        render.FormatDuration(r.DurationMin),
		Algorithm:           r.AlgorithmName,
		ComputeTimeMs:       r.ComputeTimeMs,
		CostRatio:           r.CostRatio,
		SimilarityToOptimal: r.SimilarityToOptimal,
		Style:               dto.LineStyle{Color: style.Color, Weight: style.Weight, Opacity: style.Opacity},
		Geometry:            r.Geometry.LatLngLists(),
		Polyline:            render.Polyline(r.Geometry),
		Instructions:        make([]dto.InstructionResponse, 0, len(r.Instructions)),
		ElevationProfile:    make([]dto.ElevationPoint, 0, len(r.ElevationProfile)),
	}
	if out.Geometry == nil {
		out.Geometry = [][]float64{}
	}
	for _, in := range r.Instructions {
		ir := dto.InstructionResponse{
			Text:            in.Text,
			TurnType:        string(in.TurnType),
			DistanceMeters:  in.DistanceMeters,
			DurationSeconds: in.DurationSeconds,
			DistanceText:    render.FormatDistance(in.DistanceMeters / 1000),
			StreetName:      in.StreetName,
			Segment:         in.SegmentGeometry.LatLngLists(),
		}
		if in.Location != nil {
			ir.Location = in.Location.LatLngList()
		}
		out.Instructions = append(out.Instructions, ir)
	}
	for _, s := range r.ElevationProfile {
		out.ElevationProfile = append(out.ElevationProfile, dto.ElevationPoint{DistanceKm: s.DistanceKm, Elevation: s.ElevationMeters})
	}
	if st := r.ElevationStats; st != nil {
		out.ElevationStats = &dto.ElevationStats{
			MinElevation: st.MinMeters,
			MaxElevation: st.MaxMeters,
			TotalAscent:  st.AscentMeters,
			TotalDescent: st.DescentMeters,
		}
	}
	return out
}

func presentSlots(slots []domain.WaypointSlot) []dto.WaypointSlot {
	out := make([]dto.WaypointSlot, 0, len(slots))
	for i, s := range slots {
		ws := dto.WaypointSlot{Index: i, Pending: !s.Resolved(), Marker: s.Marker}
		if s.Point != nil {
			lat, lng := s.Point.Lat, s.Point.Lng
			ws.Lat, ws.Lng = &lat, &lng
		}
		out = append(out, ws)
	}
	return out
}

func presentWaypoints(slots []domain.WaypointSlot) dto.WaypointsResponse {
	resp := dto.WaypointsResponse{Waypoints: presentSlots(slots)}
	for _, s := range slots {
		if s.Resolved() {
			resp.Resolved++
		} else {
			resp.Pending++
		}
	}
	return resp
}

func presentHistory(entries []ports.HistoryEntry) dto.HistoryResponse {
	resp := dto.HistoryResponse{Entries: make([]dto.HistoryEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.HistoryEntry{
			ID:          e.ID,
			Kind:        string(e.Kind),
			Profile:     string(e.Profile),
			Algorithm:   e.Algorithm,
			DistanceKm:  e.DistanceKm,
			DurationMin: e.DurationMin,
			Polyline:    e.Polyline,
			CreatedAt:   e.CreatedAt,
		})
	}
	return resp
}
