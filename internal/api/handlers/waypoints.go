package handlers

import (
	"context"
	"net/http"

	"quantaroute-demo/internal/api/dto"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/services"
)

func (h *SessionHandler) ListWaypoints(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, presentWaypoints(s.Waypoints()))
}

// AddWaypoint appends an empty slot for the next map click to fill.
func (h *SessionHandler) AddWaypoint(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusCreated, presentWaypoints(s.AddWaypoint()))
}

// ResolveWaypoint fills the first pending slot with a clicked point.
func (h *SessionHandler) ResolveWaypoint(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	p, ok := h.waypointPoint(w, r)
	if !ok {
		return
	}
	slots, _, err := s.ResolveWaypoint(p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, presentWaypoints(slots))
}

// SetWaypoint fills slot {i} from a point or typed text.
func (h *SessionHandler) SetWaypoint(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	i, ok := pathIndex(w, r)
	if !ok {
		return
	}
	p, ok := h.waypointPoint(w, r)
	if !ok {
		return
	}
	h.writeSlots(w, r, func() ([]domain.WaypointSlot, error) { return s.SetWaypoint(i, p) })
}

func (h *SessionHandler) RemoveWaypoint(w http.ResponseWriter, r *http.Request) {
	h.indexOp(w, r, (*services.Session).RemoveWaypoint)
}

func (h *SessionHandler) MoveWaypointUp(w http.ResponseWriter, r *http.Request) {
	h.indexOp(w, r, (*services.Session).MoveWaypointUp)
}

func (h *SessionHandler) MoveWaypointDown(w http.ResponseWriter, r *http.Request) {
	h.indexOp(w, r, (*services.Session).MoveWaypointDown)
}

func (h *SessionHandler) indexOp(w http.ResponseWriter, r *http.Request, op func(*services.Session, int) ([]domain.WaypointSlot, error)) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	i, ok := pathIndex(w, r)
	if !ok {
		return
	}
	h.writeSlots(w, r, func() ([]domain.WaypointSlot, error) { return op(s, i) })
}

func (h *SessionHandler) writeSlots(w http.ResponseWriter, r *http.Request, op func() ([]domain.WaypointSlot, error)) {
	slots, err := op()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, presentWaypoints(slots))
}

func (h *SessionHandler) waypointPoint(w http.ResponseWriter, r *http.Request) (domain.RoutePoint, bool) {
	var req dto.WaypointRequest
	if !decodeJSON(w, r, h.validate, &req) {
		return domain.RoutePoint{}, false
	}
	p, err := h.pointOrQuery(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return domain.RoutePoint{}, false
	}
	return p, true
}

func (h *SessionHandler) pointOrQuery(ctx context.Context, req dto.WaypointRequest) (domain.RoutePoint, error) {
	if req.Lat != nil && req.Lng != nil {
		return domain.NewRoutePoint(*req.Lat, *req.Lng)
	}
	return h.Locator.Locate(ctx, req.Query)
}
