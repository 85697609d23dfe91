package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid request status transition")
	ErrFloorOutOfRange   = errors.New("floor out of range")
)

// RequestStatus tracks a passenger from call to drop-off.
type RequestStatus int

const (
	Pending RequestStatus = iota
	PickedUp
	Completed
)

func (s RequestStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case PickedUp:
		return "PickedUp"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Represents a single hall call and, once boarded, the passenger it belongs to.
// DestinationFloor and WaitSeconds stay nil until they are known.
// Requests are never removed from the ledger; completed ones are kept for audit.
type PickupRequest struct {
	ID                        int
	PickupFloor               int
	DestinationFloor          *int
	CreatedAt                 time.Time
	SimulationClockAtCreation time.Duration
	CabinFloorAtCreation      int
	WaitSeconds               *int
	Status                    RequestStatus
}

// Clone returns a copy that does not share DestinationFloor or WaitSeconds.
func (r PickupRequest) Clone() PickupRequest {
	if r.DestinationFloor != nil {
		d := *r.DestinationFloor
		r.DestinationFloor = &d
	}
	if r.WaitSeconds != nil {
		w := *r.WaitSeconds
		r.WaitSeconds = &w
	}
	return r
}

// HasDestination reports whether a destination was selected.
func (r *PickupRequest) HasDestination() bool { return r.DestinationFloor != nil }

// Stranded reports a boarded passenger with no destination.
func (r *PickupRequest) Stranded() bool {
	return r.Status == PickedUp && r.DestinationFloor == nil
}

// Advance moves the request one step forward in its lifecycle.
// Status only ever moves Pending -> PickedUp -> Completed.
func (r *PickupRequest) Advance(to RequestStatus) error {
	if to != r.Status+1 {
		return fmt.Errorf("request %d: %s -> %s: %w", r.ID, r.Status, to, ErrInvalidTransition)
	}
	r.Status = to
	return nil
}

// Board marks the passenger as picked up and stamps the wait time.
func (r *PickupRequest) Board(now time.Time) error {
	if err := r.Advance(PickedUp); err != nil {
		return err
	}

	wait := int(now.Sub(r.CreatedAt) / time.Second)
	if wait < 0 {
		wait = 0
	}
	r.WaitSeconds = &wait
	return nil
}
