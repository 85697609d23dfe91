package domain

import "time"

// EventKind distinguishes successful pickups from capacity rejections.
type EventKind string

const (
	EventPickup       EventKind = "pickup"
	EventCapacityFull EventKind = "capacity_full"
)

// Represents one immutable row of the pickup event log.
// Records are produced by the scheduler and consumed offline; nothing reads them back
// during a simulation.
type EventRecord struct {
	RecordedAt      time.Time
	TimeOfDay       time.Duration
	PickupFloor     int
	CabinFloor      int
	WaitSeconds     int
	OccupancyBefore int
	State           string
	Kind            EventKind
}

func (e EventRecord) Hour() int   { return int(e.TimeOfDay/time.Hour) % 24 }
func (e EventRecord) Minute() int { return int(e.TimeOfDay/time.Minute) % 60 }
