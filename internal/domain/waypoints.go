package domain

import "fmt"

// WaypointSlot is one intermediate stop. Point is nil while the slot waits
// for the next map interaction. Marker is an opaque handle owned by the
// renderer and travels with the point on reorder.
type WaypointSlot struct {
	Point  *RoutePoint
	Marker string
}

func (s WaypointSlot) Resolved() bool { return s.Point != nil }

// WaypointList is an ordered list of slots between a fixed start and end.
// Every operation returns a new list and leaves the receiver untouched.
type WaypointList struct {
	slots []WaypointSlot
}

func NewWaypointList(slots ...WaypointSlot) WaypointList {
	return WaypointList{slots: append([]WaypointSlot(nil), slots...)}
}

func (l WaypointList) Len() int { return len(l.slots) }

func (l WaypointList) Slots() []WaypointSlot {
	return append([]WaypointSlot(nil), l.slots...)
}

func (l WaypointList) clone() []WaypointSlot {
	return append(make([]WaypointSlot, 0, len(l.slots)+1), l.slots...)
}

// Append adds an empty slot at the end.
func (l WaypointList) Append() WaypointList {
	return WaypointList{slots: append(l.clone(), WaypointSlot{})}
}

// Resolve fills the first pending slot. ok is false when nothing is pending.
func (l WaypointList) Resolve(p RoutePoint, marker string) (WaypointList, int, bool) {
	for i, s := range l.slots {
		if !s.Resolved() {
			out, _ := l.Set(i, p, marker)
			return out, i, true
		}
	}
	return l, -1, false
}

// Set resolves (or moves) the slot at index.
func (l WaypointList) Set(index int, p RoutePoint, marker string) (WaypointList, error) {
	if index < 0 || index >= len(l.slots) {
		return l, fmt.Errorf("set waypoint %d of %d: %w", index, len(l.slots), ErrIndexOutOfRange)
	}
	if !p.Valid() {
		return l, fmt.Errorf("set waypoint %d: %w", index, ErrInvalidCoordinate)
	}
	slots := l.clone()
	pt := p
	slots[index] = WaypointSlot{Point: &pt, Marker: marker}
	return WaypointList{slots: slots}, nil
}

func (l WaypointList) Remove(index int) (WaypointList, error) {
	if index < 0 || index >= len(l.slots) {
		return l, fmt.Errorf("remove waypoint %d of %d: %w", index, len(l.slots), ErrIndexOutOfRange)
	}
	slots := l.clone()
	slots = append(slots[:index], slots[index+1:]...)
	return WaypointList{slots: slots}, nil
}

// MoveUp swaps the slot with its predecessor. Moving the first slot is a no-op.
func (l WaypointList) MoveUp(index int) (WaypointList, error) {
	if index < 0 || index >= len(l.slots) {
		return l, fmt.Errorf("move waypoint %d up: %w", index, ErrIndexOutOfRange)
	}
	if index == 0 {
		return l, nil
	}
	slots := l.clone()
	slots[index-1], slots[index] = slots[index], slots[index-1]
	return WaypointList{slots: slots}, nil
}

// MoveDown swaps the slot with its successor. Moving the last slot is a no-op.
func (l WaypointList) MoveDown(index int) (WaypointList, error) {
	if index < 0 || index >= len(l.slots) {
		return l, fmt.Errorf("move waypoint %d down: %w", index, ErrIndexOutOfRange)
	}
	if index == len(l.slots)-1 {
		return l, nil
	}
	slots := l.clone()
	slots[index], slots[index+1] = slots[index+1], slots[index]
	return WaypointList{slots: slots}, nil
}

// Resolved flattens the list to the points that were actually set,
// which is what gets sent to the backend.
func (l WaypointList) Resolved() []RoutePoint {
	out := make([]RoutePoint, 0, len(l.slots))
	for _, s := range l.slots {
		if s.Point != nil {
			out = append(out, *s.Point)
		}
	}
	return out
}

func (l WaypointList) Pending() int {
	n := 0
	for _, s := range l.slots {
		if !s.Resolved() {
			n++
		}
	}
	return n
}
