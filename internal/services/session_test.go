package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"quantaroute-demo/internal/adapters/quantaroute"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/wire"
)

// gatedBackend holds its first Route call until release is closed.
type gatedBackend struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
	first   string
	later   string
}

func newGatedBackend(first, later string) *gatedBackend {
	return &gatedBackend{entered: make(chan struct{}), release: make(chan struct{}), first: first, later: later}
}

func (b *gatedBackend) Route(ctx context.Context, req wire.RouteRequest) ([]byte, error) {
	b.mu.Lock()
	b.calls++
	n := b.calls
	b.mu.Unlock()

	if n == 1 {
		close(b.entered)
		<-b.release
		return []byte(b.first), nil
	}
	return []byte(b.later), nil
}

func (b *gatedBackend) Alternatives(ctx context.Context, req wire.AlternativesRequest) ([]byte, error) {
	return b.Route(ctx, req.RouteRequest)
}

func (b *gatedBackend) Optimized(ctx context.Context, req wire.OptimizedRequest) ([]byte, error) {
	return nil, errors.New("not used")
}

func (b *gatedBackend) Health(ctx context.Context) (wire.HealthResponse, error) {
	return wire.HealthResponse{Status: "ok"}, nil
}

func routeBody(meters int) string {
	return `{"route":{"geometry":[[12.97,77.59],[12.98,77.60]],"distance":` + strconv.Itoa(meters) + `,"duration":60}}`
}

func TestSessionDropsStaleResult(t *testing.T) {
	backend := newGatedBackend(routeBody(1000), routeBody(5000))
	calc := NewCalculator(backend)
	s := NewSessionStore(domain.ProfileCar).Create()
	req := CalculateRequest{Start: bangalore, End: indiranagar}

	errc := make(chan error, 1)
	go func() {
		_, err := s.Calculate(context.Background(), calc, req)
		errc <- err
	}()
	<-backend.entered

	snap, err := s.Calculate(context.Background(), calc, req)
	if err != nil {
		t.Fatalf("second Calculate() error = %v", err)
	}
	if snap.Routes[0].DistanceKm != 5 {
		t.Fatalf("distance = %v, want 5", snap.Routes[0].DistanceKm)
	}

	close(backend.release)
	if err := <-errc; !errors.Is(err, domain.ErrStaleCalculation) {
		t.Fatalf("first Calculate() error = %v, want ErrStaleCalculation", err)
	}
	if got := s.Snapshot().Routes[0].DistanceKm; got != 5 {
		t.Fatalf("stale result replaced the route set: distance = %v", got)
	}
}

func TestSessionClearInvalidatesInflight(t *testing.T) {
	backend := newGatedBackend(routeBody(1000), routeBody(1000))
	calc := NewCalculator(backend)
	s := NewSessionStore(domain.ProfileCar).Create()

	errc := make(chan error, 1)
	go func() {
		_, err := s.Calculate(context.Background(), calc, CalculateRequest{Start: bangalore, End: indiranagar})
		errc <- err
	}()
	<-backend.entered
	s.Clear()
	close(backend.release)

	if err := <-errc; !errors.Is(err, domain.ErrStaleCalculation) {
		t.Fatalf("err = %v, want ErrStaleCalculation", err)
	}
	if snap := s.Snapshot(); len(snap.Routes) != 0 || snap.SelectedIndex != -1 {
		t.Fatalf("routes after clear = %d selected = %d", len(snap.Routes), snap.SelectedIndex)
	}
}

func TestSessionSendsResolvedWaypoints(t *testing.T) {
	backend := quantaroute.NewMockBackend(allResponses())
	s := NewSessionStore(domain.ProfileFoot).Create()

	s.AddWaypoint()
	s.AddWaypoint()
	if _, i, err := s.ResolveWaypoint(domain.RoutePoint{Lat: 12.98, Lng: 77.60}); err != nil || i != 0 {
		t.Fatalf("ResolveWaypoint() = %d, %v", i, err)
	}

	snap, err := s.Calculate(context.Background(), NewCalculator(backend), CalculateRequest{Start: bangalore, End: indiranagar})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	req, ok := backend.LastRequest().(wire.RouteRequest)
	if !ok || len(req.Waypoints) != 1 || req.Profile != "foot" {
		t.Fatalf("request = %#v", backend.LastRequest())
	}
	if snap.ClickedStart == nil || *snap.ClickedStart != bangalore || len(snap.Waypoints) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestSessionWaypointOperations(t *testing.T) {
	s := NewSessionStore("").Create()
	a := domain.RoutePoint{Lat: 1, Lng: 1}
	b := domain.RoutePoint{Lat: 2, Lng: 2}

	if _, i, _ := s.ResolveWaypoint(a); i != 0 {
		t.Fatalf("first resolve index = %d, want 0", i)
	}
	if _, i, _ := s.ResolveWaypoint(b); i != 1 {
		t.Fatalf("second resolve index = %d, want 1", i)
	}

	slots, err := s.MoveWaypointUp(1)
	if err != nil || *slots[0].Point != b || *slots[1].Point != a {
		t.Fatalf("after move up: %v err %v", slots, err)
	}
	slots, _ = s.MoveWaypointDown(0)
	if *slots[0].Point != a {
		t.Fatalf("after move down: first = %v", *slots[0].Point)
	}

	if _, err := s.RemoveWaypoint(5); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("remove out of range err = %v", err)
	}
	if _, err := s.SetWaypoint(0, domain.RoutePoint{Lat: 100}); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("set invalid err = %v", err)
	}
	if _, _, err := s.ResolveWaypoint(domain.RoutePoint{Lng: 500}); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("resolve invalid err = %v", err)
	}
	slots, _ = s.RemoveWaypoint(0)
	if len(slots) != 1 || *slots[0].Point != b {
		t.Fatalf("after remove: %v", slots)
	}
}

func TestSessionSelect(t *testing.T) {
	s := NewSessionStore(domain.ProfileCar).Create()
	if _, err := s.Select(0); !errors.Is(err, domain.ErrNoRoute) {
		t.Fatalf("select without routes err = %v", err)
	}

	calc := NewCalculator(quantaroute.NewMockBackend(allResponses()))
	if _, err := s.Calculate(context.Background(), calc, CalculateRequest{Start: bangalore, End: indiranagar, Alternatives: true}); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	r, err := s.Select(7)
	if err != nil || r.ID != "alternative_1" || !r.IsSelected {
		t.Fatalf("Select(7) = %q selected=%v err=%v", r.ID, r.IsSelected, err)
	}
	snap := s.Snapshot()
	if snap.SelectedIndex != 1 || snap.Routes[0].IsSelected {
		t.Fatalf("selected index = %d optimal selected = %v", snap.SelectedIndex, snap.Routes[0].IsSelected)
	}
}

func TestSessionStore(t *testing.T) {
	st := NewSessionStore(domain.Profile("hovercraft"))
	s := st.Create()
	if s.Snapshot().Profile != domain.ProfileCar {
		t.Fatalf("unknown default profile not replaced")
	}

	got, err := st.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if _, err := st.Get("missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Get(missing) err = %v", err)
	}

	st.Create()
	if n := st.Sweep(time.Now().Add(time.Minute)); n != 2 || st.Len() != 0 {
		t.Fatalf("Sweep removed %d, %d left", n, st.Len())
	}

	s = st.Create()
	st.Delete(s.ID)
	if st.Len() != 0 {
		t.Fatalf("Delete left %d sessions", st.Len())
	}
}
