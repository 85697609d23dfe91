package dto

import (
	"elevator-sim-service/internal/domain"
	"time"
)

type FloorRequest struct {
	Floor *int `json:"floor"`
}

type PickupRequestResponse struct {
	ID                   int       `json:"id"`
	PickupFloor          int       `json:"pickup_floor"`
	DestinationFloor     *int      `json:"destination_floor"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	TimeOfDayAtCreation  string    `json:"time_of_day_at_creation"`
	CabinFloorAtCreation int       `json:"cabin_floor_at_creation"`
	WaitSeconds          *int      `json:"wait_seconds"`
	Stranded             bool      `json:"stranded"`
}

func FromRequest(r domain.PickupRequest) PickupRequestResponse {
	return PickupRequestResponse{
		ID:                   r.ID,
		PickupFloor:          r.PickupFloor,
		DestinationFloor:     r.DestinationFloor,
		Status:               r.Status.String(),
		CreatedAt:            r.CreatedAt,
		TimeOfDayAtCreation:  domain.FormatHM(r.SimulationClockAtCreation),
		CabinFloorAtCreation: r.CabinFloorAtCreation,
		WaitSeconds:          r.WaitSeconds,
		Stranded:             r.Stranded(),
	}
}
