package domain

import (
	"slices"
	"time"
)

// Snapshot is a point-in-time copy of everything the presentation layer renders.
// It shares no memory with the scheduler's live state.
type Snapshot struct {
	Version        uint64
	TakenAt        time.Time
	Cabin          CabinState
	Requests       []PickupRequest
	Destinations   []int
	InnerPanelOpen bool
	Clock          Clock
	StatusLog      []StatusEntry
}

// Stranded counts boarded passengers that never selected a destination.
func (s Snapshot) Stranded() int {
	n := 0
	for i := range s.Requests {
		if s.Requests[i].Stranded() {
			n++
		}
	}
	return n
}

// Clone returns a copy whose slices and pointers are not shared with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Requests = nil
	if s.Requests != nil {
		out.Requests = make([]PickupRequest, len(s.Requests))
		for i := range s.Requests {
			out.Requests[i] = s.Requests[i].Clone()
		}
	}
	out.Destinations = slices.Clone(s.Destinations)
	out.StatusLog = slices.Clone(s.StatusLog)
	return out
}
