package ports

import (
	"context"
	"elevator-sim-service/internal/domain"
)

// Dispatcher is the input surface of the simulation: the only way call, destination
// and clock events reach the scheduler, plus read access to its state.
type Dispatcher interface {
	RequestCall(ctx context.Context, floor int) (domain.PickupRequest, error)
	SelectDestination(ctx context.Context, floor int) (domain.PickupRequest, bool, error)
	SetSimulationClock(ctx context.Context, hour, minute int) (bool, error)
	Snapshot() domain.Snapshot
}
