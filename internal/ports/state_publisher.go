package ports

import (
	"context"
	"elevator-sim-service/internal/domain"
)

// Port: pushes state-change notifications to the presentation layer.
type StatePublisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}
