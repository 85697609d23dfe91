package dto

import (
	"elevator-sim-service/internal/domain"
	"time"
)

type EventResponse struct {
	RecordedAt      time.Time `json:"recorded_at"`
	TimeOfDay       string    `json:"time_of_day"`
	Hour            int       `json:"hour"`
	Minute          int       `json:"minute"`
	PickupFloor     int       `json:"pickup_floor"`
	CabinFloor      int       `json:"cabin_floor"`
	WaitSeconds     int       `json:"wait_seconds"`
	OccupancyBefore int       `json:"occupancy_before"`
	State           string    `json:"state"`
	Kind            string    `json:"kind"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

type CountEventsResponse struct {
	Count int `json:"count"`
}

func FromEvent(e domain.EventRecord) EventResponse {
	return EventResponse{
		RecordedAt:      e.RecordedAt,
		TimeOfDay:       domain.FormatHMS(e.TimeOfDay),
		Hour:            e.Hour(),
		Minute:          e.Minute(),
		PickupFloor:     e.PickupFloor,
		CabinFloor:      e.CabinFloor,
		WaitSeconds:     e.WaitSeconds,
		OccupancyBefore: e.OccupancyBefore,
		State:           e.State,
		Kind:            string(e.Kind),
	}
}
