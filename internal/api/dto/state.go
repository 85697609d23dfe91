package dto

import (
	"elevator-sim-service/internal/domain"
	"time"
)

type CabinResponse struct {
	Floor            int     `json:"floor"`
	Status           string  `json:"status"`
	DoorOpenFraction float64 `json:"door_open_fraction"`
	Occupancy        int     `json:"occupancy"`
	MaxCapacity      int     `json:"max_capacity"`
}

type SimulationClockResponse struct {
	Running   bool   `json:"running"`
	Elapsed   string `json:"elapsed"`
	TimeOfDay string `json:"time_of_day"`
}

type StatusEntryResponse struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// StateResponse is the full read view of the simulation. It is served by GET /state
// and published to Redis subscribers.
type StateResponse struct {
	Version        uint64                  `json:"version"`
	TakenAt        time.Time               `json:"taken_at"`
	Cabin          CabinResponse           `json:"cabin"`
	Requests       []PickupRequestResponse `json:"requests"`
	Destinations   []int                   `json:"destinations"`
	InnerPanelOpen bool                    `json:"inner_panel_open"`
	Stranded       int                     `json:"stranded"`
	Clock          SimulationClockResponse `json:"clock"`
	StatusLog      []StatusEntryResponse   `json:"status_log"`
}

func FromSnapshot(snap domain.Snapshot, maxCapacity int) StateResponse {
	res := StateResponse{
		Version: snap.Version,
		TakenAt: snap.TakenAt,
		Cabin: CabinResponse{
			Floor:            snap.Cabin.Floor,
			Status:           snap.Cabin.Status.String(),
			DoorOpenFraction: snap.Cabin.DoorOpenFraction,
			Occupancy:        snap.Cabin.Occupancy,
			MaxCapacity:      maxCapacity,
		},
		Requests:       make([]PickupRequestResponse, 0, len(snap.Requests)),
		Destinations:   append([]int{}, snap.Destinations...),
		InnerPanelOpen: snap.InnerPanelOpen,
		Stranded:       snap.Stranded(),
		Clock: SimulationClockResponse{
			Running:   snap.Clock.Running,
			Elapsed:   domain.FormatHMS(snap.Clock.Elapsed(snap.TakenAt)),
			TimeOfDay: domain.FormatHM(snap.Clock.TimeOfDay),
		},
		StatusLog: make([]StatusEntryResponse, 0, len(snap.StatusLog)),
	}
	for _, r := range snap.Requests {
		res.Requests = append(res.Requests, FromRequest(r))
	}
	for _, e := range snap.StatusLog {
		res.StatusLog = append(res.StatusLog, StatusEntryResponse{At: e.At, Message: e.Message})
	}
	return res
}
