package domain

import "strings"

// Profile is the travel mode sent to the backend.
type Profile string

const (
	ProfileCar        Profile = "car"
	ProfileBicycle    Profile = "bicycle"
	ProfileFoot       Profile = "foot"
	ProfileMotorcycle Profile = "motorcycle"
)

var profileNames = map[Profile]string{
	ProfileCar:        "Driving",
	ProfileBicycle:    "Cycling",
	ProfileFoot:       "Walking",
	ProfileMotorcycle: "Motorcycle",
}

// ParseProfile normalizes user input; unknown values fall back to car.
func ParseProfile(s string) Profile {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := profileNames[p]; ok {
		return p
	}
	return ProfileCar
}

func (p Profile) Known() bool {
	_, ok := profileNames[p]
	return ok
}

// DisplayName is the label shown in the route info panel.
func (p Profile) DisplayName() string {
	if n, ok := profileNames[p]; ok {
		return n
	}
	return "Driving"
}

// AverageSpeedKmh is the assumed cruising speed used whenever the backend
// gives no timing (simulated routes, geometry-derived instructions).
func (p Profile) AverageSpeedKmh() float64 {
	switch p {
	case ProfileCar:
		return 45
	case ProfileMotorcycle:
		return 40
	case ProfileBicycle:
		return 15
	case ProfileFoot:
		return 5
	default:
		return 50
	}
}
