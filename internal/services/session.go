package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/logger"
	"quantaroute-demo/internal/platform/metrics"
	"quantaroute-demo/internal/platform/obs"
)

// Session is one map page's state: the current route set, the waypoint
// list and the calculation generation. Each calculation takes a new
// generation; a result that comes back after a newer calculation (or a
// Clear) started is dropped.
type Session struct {
	ID string

	mu           sync.Mutex
	profile      domain.Profile
	waypoints    domain.WaypointList
	outcome      *Outcome
	clickedStart *domain.RoutePoint
	clickedEnd   *domain.RoutePoint
	generation   uint64
	touched      time.Time
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	SessionID            string
	Profile              domain.Profile
	Routes               []domain.Route
	SelectedIndex        int
	Kind                 domain.RouteKind
	NoAlternatives       bool
	AlternativesDisabled bool
	Degraded             bool
	Cached               bool
	ComputationMethod    string
	ComputeTimeMs        float64
	Status               string
	Diagnostics          domain.Diagnostics
	ClickedStart         *domain.RoutePoint
	ClickedEnd           *domain.RoutePoint
	Waypoints            []domain.WaypointSlot
}

func newSession(id string, profile domain.Profile) *Session {
	return &Session{ID: id, profile: profile, touched: time.Now()}
}

// Calculate runs calc with the session's resolved waypoints and installs
// the result unless a newer calculation has started in the meantime, in
// which case domain.ErrStaleCalculation is returned and nothing changes.
// A failed calculation leaves the previous routes in place.
func (s *Session) Calculate(ctx context.Context, calc *Calculator, req CalculateRequest) (Snapshot, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	req.SessionID = s.ID
	req.Waypoints = s.waypoints.Resolved()
	if req.Profile == "" {
		req.Profile = s.profile
	}
	s.touched = time.Now()
	s.mu.Unlock()

	out, err := calc.Calculate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		metrics.StaleResultsTotal.Inc()
		logger.L().Info("dropping stale route result",
			"req_id", obs.RequestID(ctx), "session", s.ID, "generation", gen, "current", s.generation)
		return Snapshot{}, fmt.Errorf("calculate route for session %s: %w", s.ID, domain.ErrStaleCalculation)
	}
	if err != nil {
		return Snapshot{}, err
	}

	start, end := req.Start, req.End
	s.outcome = &out
	s.clickedStart, s.clickedEnd = &start, &end
	s.profile = req.Profile
	return s.snapshotLocked(), nil
}

// Select marks route index of the current set as selected. Indices out of
// range are clamped.
func (s *Session) Select(index int) (domain.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	if s.outcome == nil || s.outcome.Set == nil || s.outcome.Set.Len() == 0 {
		return domain.Route{}, fmt.Errorf("select route %d: %w", index, domain.ErrNoRoute)
	}
	return s.outcome.Set.Select(index), nil
}

// Clear drops the routes, clicked points and waypoints. An in-flight
// calculation will find its generation outdated.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.outcome = nil
	s.clickedStart, s.clickedEnd = nil, nil
	s.waypoints = domain.NewWaypointList()
	s.touched = time.Now()
}

func (s *Session) SetProfile(p domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:     s.ID,
		Profile:       s.profile,
		SelectedIndex: -1,
		ClickedStart:  s.clickedStart,
		ClickedEnd:    s.clickedEnd,
		Waypoints:     s.waypoints.Slots(),
	}
	if s.outcome == nil {
		return snap
	}
	o := s.outcome
	snap.Kind = o.Kind
	snap.NoAlternatives = o.NoAlternatives
	snap.AlternativesDisabled = o.AlternativesDisabled
	snap.Degraded = o.Degraded
	snap.Cached = o.Cached
	snap.ComputationMethod = o.ComputationMethod
	snap.ComputeTimeMs = o.ComputeTimeMs
	snap.Status = o.Status
	snap.Diagnostics = append(domain.Diagnostics(nil), o.Diagnostics...)
	if o.Set != nil {
		snap.Routes = o.Set.Routes()
		snap.SelectedIndex = o.Set.SelectedIndex()
	}
	return snap
}

// updateWaypoints applies op to the waypoint list and stores the result
// when op succeeds.
func (s *Session) updateWaypoints(op func(domain.WaypointList) (domain.WaypointList, error)) ([]domain.WaypointSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	next, err := op(s.waypoints)
	if err != nil {
		return s.waypoints.Slots(), err
	}
	s.waypoints = next
	return next.Slots(), nil
}

// AddWaypoint appends a pending slot that the next map click fills.
func (s *Session) AddWaypoint() []domain.WaypointSlot {
	slots, _ := s.updateWaypoints(func(l domain.WaypointList) (domain.WaypointList, error) {
		return l.Append(), nil
	})
	return slots
}

// ResolveWaypoint fills the first pending slot, appending one if none is
// pending.
func (s *Session) ResolveWaypoint(p domain.RoutePoint) ([]domain.WaypointSlot, int, error) {
	index := -1
	slots, err := s.updateWaypoints(func(l domain.WaypointList) (domain.WaypointList, error) {
		if !p.Valid() {
			return l, fmt.Errorf("resolve waypoint: %w", domain.ErrInvalidCoordinate)
		}
		if l.Pending() == 0 {
			l = l.Append()
		}
		next, i, _ := l.Resolve(p, markerID())
		index = i
		return next, nil
	})
	return slots, index, err
}

func (s *Session) SetWaypoint(index int, p domain.RoutePoint) ([]domain.WaypointSlot, error) {
	return s.updateWaypoints(func(l domain.WaypointList) (domain.WaypointList, error) {
		return l.Set(index, p, markerID())
	})
}

func (s *Session) RemoveWaypoint(index int) ([]domain.WaypointSlot, error) {
	return s.updateWaypoints(func(l domain.WaypointList) (domain.WaypointList, error) {
		return l.Remove(index)
	})
}

func (s *Session) MoveWaypointUp(index int) ([]domain.WaypointSlot, error) {
	return s.updateWaypoints(func(l domain.WaypointList) (domain.WaypointList, error) {
		return l.MoveUp(index)
	})
}

func (s *Session) MoveWaypointDown(index int) ([]domain.WaypointSlot, error) {
	return s.updateWaypoints(func(l domain.WaypointList) (domain.WaypointList, error) {
		return l.MoveDown(index)
	})
}

func (s *Session) Waypoints() []domain.WaypointSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waypoints.Slots()
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func markerID() string { return "wp-" + uuid.NewString()[:8] }

// SessionStore keeps sessions in memory by id.
type SessionStore struct {
	mu             sync.RWMutex
	sessions       map[string]*Session
	defaultProfile domain.Profile
}

func NewSessionStore(defaultProfile domain.Profile) *SessionStore {
	if !defaultProfile.Known() {
		defaultProfile = domain.ProfileCar
	}
	return &SessionStore{sessions: make(map[string]*Session), defaultProfile: defaultProfile}
}

func (st *SessionStore) Create() *Session {
	s := newSession(uuid.NewString(), st.defaultProfile)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	return s, nil
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle since before cutoff and returns how many
// were removed.
func (st *SessionStore) Sweep(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.lastUsed().Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}
