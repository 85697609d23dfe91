package domain

import (
	"fmt"
	"slices"
	"time"
)

// Ledger is the request ledger: every pickup request ever made, in arrival order,
// plus the destination set derived from boarded passengers.
type Ledger struct {
	requests     []*PickupRequest
	destinations map[int]struct{}
	nextID       int
}

func NewLedger() *Ledger {
	return &Ledger{destinations: make(map[int]struct{})}
}

// Add records a new pending call.
func (l *Ledger) Add(pickupFloor int, createdAt time.Time, timeOfDay time.Duration, cabinFloor int) *PickupRequest {
	l.nextID++
	req := &PickupRequest{
		ID:                        l.nextID,
		PickupFloor:               pickupFloor,
		CreatedAt:                 createdAt,
		SimulationClockAtCreation: timeOfDay,
		CabinFloorAtCreation:      cabinFloor,
		Status:                    Pending,
	}
	l.requests = append(l.requests, req)
	return req
}

// Requests returns the live request pointers in arrival order.
func (l *Ledger) Requests() []*PickupRequest {
	return l.requests
}

// PendingAt returns pending requests for a floor in arrival order.
func (l *Ledger) PendingAt(floor int) []*PickupRequest {
	var out []*PickupRequest
	for _, r := range l.requests {
		if r.Status == Pending && r.PickupFloor == floor {
			out = append(out, r)
		}
	}
	return out
}

// PendingPickupFloors returns one entry per pending request.
// A floor with three waiting callers appears three times.
func (l *Ledger) PendingPickupFloors() []int {
	var out []int
	for _, r := range l.requests {
		if r.Status == Pending {
			out = append(out, r.PickupFloor)
		}
	}
	return out
}

// DestinationFloors returns the destination set in ascending order.
func (l *Ledger) DestinationFloors() []int {
	out := make([]int, 0, len(l.destinations))
	for f := range l.destinations {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func (l *Ledger) HasDestination(floor int) bool {
	_, ok := l.destinations[floor]
	return ok
}

// Onboard counts passengers currently in the cabin.
func (l *Ledger) Onboard() int {
	n := 0
	for _, r := range l.requests {
		if r.Status == PickedUp {
			n++
		}
	}
	return n
}

// Active reports whether any request is unfinished or any destination is outstanding.
func (l *Ledger) Active() bool {
	if len(l.destinations) > 0 {
		return true
	}
	for _, r := range l.requests {
		if r.Status != Completed {
			return true
		}
	}
	return false
}

// Board picks up a pending request.
func (l *Ledger) Board(req *PickupRequest, now time.Time) error {
	if err := req.Board(now); err != nil {
		return fmt.Errorf("ledger board: %w", err)
	}
	return nil
}

// AssignDestination gives floor to the most recently boarded passenger without one,
// preferring a passenger that boarded at cabinFloor. Returns false when nobody is
// eligible.
func (l *Ledger) AssignDestination(floor, cabinFloor int) (*PickupRequest, bool) {
	var fallback *PickupRequest
	for i := len(l.requests) - 1; i >= 0; i-- {
		r := l.requests[i]
		if !r.Stranded() {
			continue
		}
		if r.PickupFloor == cabinFloor {
			l.setDestination(r, floor)
			return r, true
		}
		if fallback == nil {
			fallback = r
		}
	}

	if fallback == nil {
		return nil, false
	}
	l.setDestination(fallback, floor)
	return fallback, true
}

// AssignDestinationTo sets a destination on a specific boarded passenger.
func (l *Ledger) AssignDestinationTo(req *PickupRequest, floor int) error {
	if !req.Stranded() {
		return fmt.Errorf("ledger assign destination: request %d is not awaiting a destination", req.ID)
	}
	l.setDestination(req, floor)
	return nil
}

func (l *Ledger) setDestination(r *PickupRequest, floor int) {
	f := floor
	r.DestinationFloor = &f
	l.destinations[floor] = struct{}{}
}

// CompleteAt unloads every boarded passenger headed to floor and removes floor from
// the destination set. Returns how many passengers left the cabin.
func (l *Ledger) CompleteAt(floor int) (int, error) {
	n := 0
	for _, r := range l.requests {
		if r.Status != PickedUp || r.DestinationFloor == nil || *r.DestinationFloor != floor {
			continue
		}
		if err := r.Advance(Completed); err != nil {
			return n, fmt.Errorf("ledger complete at floor %d: %w", floor, err)
		}
		n++
	}
	delete(l.destinations, floor)
	return n, nil
}

// Release completes a boarded passenger that never selected a destination.
func (l *Ledger) Release(req *PickupRequest) error {
	if !req.Stranded() {
		return fmt.Errorf("ledger release: request %d is not awaiting a destination", req.ID)
	}
	if err := req.Advance(Completed); err != nil {
		return fmt.Errorf("ledger release: %w", err)
	}
	return nil
}
