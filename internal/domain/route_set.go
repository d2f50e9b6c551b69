package domain

// RouteSet holds the candidate routes of one calculation and tracks which one
// is selected. After construction exactly one route is selected (unless the
// set is empty).
type RouteSet struct {
	routes   []Route
	selected int
}

// NewRouteSet copies routes and selects the backend-flagged index.
// A flagged index outside the set (e.g. -1 for "none flagged") selects the first route.
func NewRouteSet(routes []Route, flagged int) *RouteSet {
	s := &RouteSet{routes: make([]Route, len(routes))}
	copy(s.routes, routes)
	if len(s.routes) == 0 {
		s.selected = -1
		return s
	}
	if flagged < 0 || flagged >= len(s.routes) {
		flagged = 0
	}
	s.apply(flagged)
	return s
}

func (s *RouteSet) Len() int { return len(s.routes) }

// Select marks the route at index as selected and every other route as not.
// Out-of-range indices are clamped. Selecting the current index is a no-op
// that still returns the selected route.
func (s *RouteSet) Select(index int) Route {
	if len(s.routes) == 0 {
		return Route{}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.routes) {
		index = len(s.routes) - 1
	}
	if index != s.selected {
		s.apply(index)
	}
	return s.routes[index]
}

func (s *RouteSet) apply(index int) {
	for i := range s.routes {
		s.routes[i].IsSelected = i == index
	}
	s.selected = index
}

// Selected returns the selected route; ok is false for an empty set.
func (s *RouteSet) Selected() (Route, bool) {
	if s.selected < 0 || s.selected >= len(s.routes) {
		return Route{}, false
	}
	return s.routes[s.selected], true
}

func (s *RouteSet) SelectedIndex() int { return s.selected }

// Routes returns a copy of the routes in display order.
func (s *RouteSet) Routes() []Route {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out
}

func (s *RouteSet) At(index int) (Route, bool) {
	if index < 0 || index >= len(s.routes) {
		return Route{}, false
	}
	return s.routes[index], true
}
