package handlers

import (
	"elevator-sim-service/internal/api/dto"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/platform/logger"
	"elevator-sim-service/internal/ports"
	"elevator-sim-service/internal/services"
	"errors"
	"net/http"
)

// DispatchHandler turns HTTP requests into scheduler inputs and serves state reads.
type DispatchHandler struct {
	Dispatcher  ports.Dispatcher
	MaxCapacity int
}

// Call registers a hall call. The request is accepted immediately and served by the
// scheduler later.
func (h *DispatchHandler) Call(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.FloorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Floor == nil {
		writeError(w, r, http.StatusBadRequest, "floor is required")
		return
	}

	created, err := h.Dispatcher.RequestCall(r.Context(), *req.Floor)
	if err != nil {
		h.writeDispatchError(w, r, "request call", err)
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.FromRequest(created))
}

// Destination selects a floor from the inner panel.
func (h *DispatchHandler) Destination(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.FloorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Floor == nil {
		writeError(w, r, http.StatusBadRequest, "floor is required")
		return
	}

	assigned, ok, err := h.Dispatcher.SelectDestination(r.Context(), *req.Floor)
	if err != nil {
		h.writeDispatchError(w, r, "select destination", err)
		return
	}
	if !ok {
		writeError(w, r, http.StatusConflict, "no boarded passenger is waiting for a destination")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRequest(assigned))
}

// Clock sets the simulation time of day. Out-of-range values are reported as not
// accepted rather than as errors.
func (h *DispatchHandler) Clock(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req dto.ClockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Hour == nil || req.Minute == nil {
		writeError(w, r, http.StatusBadRequest, "hour and minute are required")
		return
	}

	accepted, err := h.Dispatcher.SetSimulationClock(r.Context(), *req.Hour, *req.Minute)
	if err != nil {
		h.writeDispatchError(w, r, "set clock", err)
		return
	}

	snap := h.Dispatcher.Snapshot()
	writeJSON(w, r, http.StatusOK, dto.ClockResponse{
		Accepted:  accepted,
		TimeOfDay: domain.FormatHM(snap.Clock.TimeOfDay),
	})
}

func (h *DispatchHandler) State(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(h.Dispatcher.Snapshot(), h.MaxCapacity))
}

func (h *DispatchHandler) writeDispatchError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrFloorOutOfRange):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSchedulerStopped):
		writeError(w, r, http.StatusServiceUnavailable, "scheduler is not running")
	default:
		logger.Get().Error().Msgf("%s failed: %v", op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
