package handlers

import (
	"elevator-sim-service/internal/api/dto"
	"elevator-sim-service/internal/platform/logger"
	"elevator-sim-service/internal/ports"
	"net/http"
	"strconv"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 1000
)

// EventHandler exposes the pickup event log for inspection and maintenance.
type EventHandler struct {
	Log ports.EventLog
}

// Events serves GET (recent records) and DELETE (clear the log) on one path.
func (h *EventHandler) Events(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodDelete:
		h.clear(w, r)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *EventHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxEventLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	recs, err := h.Log.Recent(r.Context(), limit)
	if err != nil {
		logger.Get().Error().Msgf("list events failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListEventsResponse{Events: make([]dto.EventResponse, 0, len(recs))}
	for _, rec := range recs {
		res.Events = append(res.Events, dto.FromEvent(rec))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *EventHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Log.Clear(r.Context()); err != nil {
		logger.Get().Error().Msgf("clear events failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) Count(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	n, err := h.Log.Count(r.Context())
	if err != nil {
		logger.Get().Error().Msgf("count events failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.CountEventsResponse{Count: n})
}
