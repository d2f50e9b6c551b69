package domain

// TurnType classifies a maneuver for icons and highlighting.
type TurnType string

const (
	TurnStraight TurnType = "straight"
	TurnLeft     TurnType = "left"
	TurnRight    TurnType = "right"
	TurnUTurn    TurnType = "u-turn"
	TurnContinue TurnType = "continue"
	TurnArrive   TurnType = "arrive"
	// Synthetic marker between two legs of a multi-waypoint trip.
	TurnWaypoint TurnType = "waypoint"
)

// Represents one maneuver step. Sequence order is traversal order from
// origin to destination.
type Instruction struct {
	Text            string
	TurnType        TurnType
	DistanceMeters  float64
	DurationSeconds float64
	StreetName      *string
	Location        *RoutePoint
	SegmentGeometry RouteGeometry
}

// One point of an elevation profile. DistanceKm is non-decreasing across a series.
type ElevationSample struct {
	DistanceKm      float64
	ElevationMeters float64
}

type ElevationStats struct {
	MinMeters     float64
	MaxMeters     float64
	AscentMeters  float64
	DescentMeters float64
}

type RouteKind string

const (
	KindSingle      RouteKind = "single"
	KindOptimal     RouteKind = "optimal"
	KindAlternative RouteKind = "alternative"
	KindOptimized   RouteKind = "optimized"
	KindSimulated   RouteKind = "simulated"
)

// Route is the canonical normalized entity produced from one backend payload.
// It is replaced wholesale when a new calculation completes; only IsSelected
// is toggled in place by the owning RouteSet.
type Route struct {
	ID                  string
	Kind                RouteKind
	Name                string
	Description         string
	Geometry            RouteGeometry
	DistanceKm          float64
	DurationMin         float64
	Instructions        []Instruction
	ElevationProfile    []ElevationSample
	ElevationStats      *ElevationStats
	AlgorithmName       string
	ComputeTimeMs       float64
	CostRatio           float64
	SimilarityToOptimal float64
	IsSelected          bool
}

// Drawable reports whether the route has enough geometry to be rendered.
func (r Route) Drawable() bool { return r.Geometry.Drawable() }

// Diagnostic is a non-fatal data problem found while normalizing a response.
type Diagnostic struct {
	Component string
	Message   string
}

type Diagnostics []Diagnostic

func (d *Diagnostics) Warn(component, msg string) {
	*d = append(*d, Diagnostic{Component: component, Message: msg})
}
