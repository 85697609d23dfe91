package ports

import (
	"context"
	"elevator-sim-service/internal/domain"
)

// Contract for the append-only pickup event log.
type EventSink interface {
	// Append one record. Callers treat failures as best-effort.
	Record(ctx context.Context, rec domain.EventRecord) error
}

// EventLog extends EventSink with the maintenance operations used by tooling.
type EventLog interface {
	EventSink
	// Return how many records the log holds.
	Count(ctx context.Context) (int, error)
	// Return up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.EventRecord, error)
	// Remove every record, keeping the current schema.
	Clear(ctx context.Context) error
}
