package domain

import "testing"

func threeRoutes() []Route {
	return []Route{
		{ID: "optimal", Kind: KindOptimal, DistanceKm: 1, DurationMin: 2},
		{ID: "alternative_1", Kind: KindAlternative, DistanceKm: 1.2, DurationMin: 2.5},
		{ID: "alternative_2", Kind: KindAlternative, DistanceKm: 1.4, DurationMin: 3},
	}
}

func selectedCount(s *RouteSet) int {
	n := 0
	for _, r := range s.Routes() {
		if r.IsSelected {
			n++
		}
	}
	return n
}

func TestNewRouteSetSelectsFlagged(t *testing.T) {
	s := NewRouteSet(threeRoutes(), 1)

	if s.SelectedIndex() != 1 {
		t.Fatalf("selected index = %d, want 1", s.SelectedIndex())
	}
	if n := selectedCount(s); n != 1 {
		t.Fatalf("selected count = %d, want 1", n)
	}
}

func TestNewRouteSetDefaultsToFirst(t *testing.T) {
	for _, flagged := range []int{-1, 7} {
		s := NewRouteSet(threeRoutes(), flagged)
		sel, ok := s.Selected()
		if !ok {
			t.Fatalf("flagged=%d: no selection", flagged)
		}
		if sel.ID != "optimal" {
			t.Fatalf("flagged=%d: selected %q, want optimal", flagged, sel.ID)
		}
	}
}

func TestRouteSetSelectIsIdempotent(t *testing.T) {
	s := NewRouteSet(threeRoutes(), 0)

	first := s.Select(2)
	second := s.Select(2)

	if first.ID != second.ID || !first.IsSelected || !second.IsSelected {
		t.Fatalf("select twice returned %q/%v and %q/%v", first.ID, first.IsSelected, second.ID, second.IsSelected)
	}
	if s.SelectedIndex() != 2 {
		t.Fatalf("selected index = %d, want 2", s.SelectedIndex())
	}
	if n := selectedCount(s); n != 1 {
		t.Fatalf("selected count = %d, want 1", n)
	}
}

func TestRouteSetSelectClampsIndex(t *testing.T) {
	s := NewRouteSet(threeRoutes(), 1)

	if got := s.Select(-3); got.ID != "optimal" {
		t.Fatalf("select(-3) = %q, want optimal", got.ID)
	}
	if got := s.Select(99); got.ID != "alternative_2" {
		t.Fatalf("select(99) = %q, want alternative_2", got.ID)
	}
	if n := selectedCount(s); n != 1 {
		t.Fatalf("selected count = %d, want 1", n)
	}
}

func TestRouteSetDoesNotAliasInput(t *testing.T) {
	in := threeRoutes()
	s := NewRouteSet(in, 0)
	s.Select(1)

	if in[1].IsSelected {
		t.Fatalf("input slice was mutated by Select")
	}
}

func TestEmptyRouteSet(t *testing.T) {
	s := NewRouteSet(nil, 0)

	if _, ok := s.Selected(); ok {
		t.Fatalf("empty set reported a selection")
	}
	if got := s.Select(0); got.ID != "" {
		t.Fatalf("select on empty set = %q, want zero route", got.ID)
	}
}
