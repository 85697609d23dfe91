package api

import (
	"elevator-sim-service/internal/api/handlers"
	"elevator-sim-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// events may be nil, in which case the /events routes are not mounted.
func NewRouter(dispatcher ports.Dispatcher, maxCapacity int, events ports.EventLog) http.Handler {
	mux := http.NewServeMux()

	dispatch := &handlers.DispatchHandler{Dispatcher: dispatcher, MaxCapacity: maxCapacity}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/calls", dispatch.Call)
	mux.HandleFunc("/destinations", dispatch.Destination)
	mux.HandleFunc("/clock", dispatch.Clock)
	mux.HandleFunc("/state", dispatch.State)

	if events != nil {
		eventHandler := &handlers.EventHandler{Log: events}
		mux.HandleFunc("/events", eventHandler.Events)
		mux.HandleFunc("/events/count", eventHandler.Count)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
