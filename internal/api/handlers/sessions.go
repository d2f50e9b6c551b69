package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"quantaroute-demo/internal/api/dto"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/ports"
	"quantaroute-demo/internal/render"
	"quantaroute-demo/internal/services"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type SessionHandler struct {
	Sessions     *services.SessionStore
	Calculator   *services.Calculator
	Locator      *services.Locator
	HistoryStore ports.RouteHistory

	validate *validator.Validate
}

func NewSessionHandler(store *services.SessionStore, calc *services.Calculator, loc *services.Locator, history ports.RouteHistory) *SessionHandler {
	return &SessionHandler{Sessions: store, Calculator: calc, Locator: loc, HistoryStore: history, validate: newValidator()}
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	s, err := h.Sessions.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return s, true
}

// Create starts a new map session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Create()
	snap := s.Snapshot()
	writeJSON(w, r, http.StatusCreated, dto.SessionResponse{SessionID: s.ID, Profile: string(snap.Profile)})
}

// Get returns the session's current routes without recalculating.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, presentRoutes(s.Snapshot()))
}

// Clear removes the route, the clicked points and all waypoints.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Clear()
	writeJSON(w, r, http.StatusOK, presentRoutes(s.Snapshot()))
}

// Calculate runs a route calculation for the session. Waypoints come from
// the session's own list; pending slots are ignored.
func (h *SessionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.CalculateRouteRequest
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}

	start, err := h.locate(r.Context(), req.Start, req.StartQuery)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("start: %w", err))
		return
	}
	end, err := h.locate(r.Context(), req.End, req.EndQuery)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("end: %w", err))
		return
	}

	alternatives := true
	if req.Alternatives != nil {
		alternatives = *req.Alternatives
	}
	calcReq := services.CalculateRequest{
		Start:               start,
		End:                 end,
		Alternatives:        alternatives,
		Method:              req.Method,
		NumAlternatives:     req.NumAlternatives,
		DiversityPreference: req.DiversityPreference,
	}
	if req.Profile != "" {
		calcReq.Profile = domain.ParseProfile(req.Profile)
	}

	snap, err := s.Calculate(r.Context(), h.Calculator, calcReq)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, presentRoutes(snap))
}

func (h *SessionHandler) locate(ctx context.Context, p *dto.Point, query string) (domain.RoutePoint, error) {
	if p != nil && p.Lat != nil && p.Lng != nil {
		return domain.NewRoutePoint(*p.Lat, *p.Lng)
	}
	return h.Locator.Locate(ctx, query)
}

// Select makes another route of the current set the selected one.
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.SelectRouteRequest
	if !decodeJSON(w, r, h.validate, &req) {
		return
	}
	if _, err := s.Select(*req.Index); err != nil {
		if errors.Is(err, domain.ErrNoRoute) {
			writeError(w, r, http.StatusConflict, "no route to select, calculate one first")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, presentRoutes(s.Snapshot()))
}

// GeoJSON returns the map layers for the current route set.
func (h *SessionHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot()
	fc := render.FeatureCollection(render.MapInput{
		Routes:       snap.Routes,
		Profile:      snap.Profile,
		ClickedStart: snap.ClickedStart,
		ClickedEnd:   snap.ClickedEnd,
	})
	w.Header().Set("Content-Type", "application/geo+json")
	writeJSON(w, r, http.StatusOK, fc)
}

// History lists the session's previously calculated routes, newest first.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if h.HistoryStore == nil {
		writeJSON(w, r, http.StatusOK, dto.HistoryResponse{Entries: []dto.HistoryEntry{}})
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxHistoryLimit))
			return
		}
		limit = n
	}

	entries, err := h.HistoryStore.List(r.Context(), s.ID, limit)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("list history: %w", err))
		return
	}
	writeJSON(w, r, http.StatusOK, presentHistory(entries))
}
