package domain

import "errors"

var ErrNoRoute = errors.New("no route in backend response")
var ErrNoRouteForProfile = errors.New("no route found for this transport mode")
var ErrInvalidCoordinate = errors.New("coordinate out of range")
var ErrIndexOutOfRange = errors.New("index out of range")
var ErrStaleCalculation = errors.New("a newer route calculation has started")
var ErrSessionNotFound = errors.New("session not found")
var ErrLocationNotFound = errors.New("location not found")

// NoRouteError carries the backend's own explanation for a 404.
// The message is shown to the user verbatim.
type NoRouteError struct {
	Detail string
}

func (e *NoRouteError) Error() string {
	if e.Detail == "" {
		return ErrNoRouteForProfile.Error()
	}
	return e.Detail
}

func (e *NoRouteError) Is(target error) bool { return target == ErrNoRouteForProfile }
