package eventlog

import (
	"context"
	"database/sql"
	"elevator-sim-service/internal/platform/logger"
	"errors"
	"fmt"
)

// SchemaVersion is the current layout of the pickup event log.
// Version 1 had no kind column. Older layouts are dropped, never migrated.
const SchemaVersion = 2

// Initialize the SQLite event log schema, resetting the table when the stored
// schema version is older than SchemaVersion.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init sqlite schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init sqlite schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMetaQuery := `
	CREATE TABLE IF NOT EXISTS event_log_meta (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);
	`
	if _, err := tx.Exec(createMetaQuery); err != nil {
		return fmt.Errorf("init sqlite schema: create meta table: %w", err)
	}

	var version int
	err = tx.QueryRow(`SELECT value FROM event_log_meta WHERE key = 'schema_version';`).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("init sqlite schema: read schema version: %w", err)
	}

	var tables int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'pickup_events';`).Scan(&tables); err != nil {
		return fmt.Errorf("init sqlite schema: look up pickup_events: %w", err)
	}

	if tables > 0 && version < SchemaVersion {
		logger.Get().Warn().Msgf("op=eventlog.reset backend=sqlite from_version=%d to_version=%d", version, SchemaVersion)
		if _, err := tx.Exec(`DROP TABLE pickup_events;`); err != nil {
			return fmt.Errorf("init sqlite schema: drop outdated pickup_events: %w", err)
		}
	}

	createEventsQuery := `
	CREATE TABLE IF NOT EXISTS pickup_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at TEXT NOT NULL,
		time_of_day_seconds INTEGER NOT NULL,
		hour INTEGER NOT NULL,
		minute INTEGER NOT NULL,
		pickup_floor INTEGER NOT NULL,
		cabin_floor INTEGER NOT NULL,
		wait_seconds INTEGER NOT NULL,
		occupancy_before INTEGER NOT NULL,
		state TEXT NOT NULL,
		kind TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pickup_events_hour_floor
	ON pickup_events(hour, pickup_floor);
	`

	setVersionQuery := fmt.Sprintf(`
	INSERT OR REPLACE INTO event_log_meta (key, value)
	VALUES ('schema_version', %d);
	`, SchemaVersion)

	statements := []string{
		createEventsQuery,
		createIndexQuery,
		setVersionQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init sqlite schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sqlite schema: commit tx: %w", err)
	}

	return nil
}

// Initialize the Postgres event log schema with the same reset rule as SQLite.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMetaQuery := `
	CREATE TABLE IF NOT EXISTS event_log_meta (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);
	`
	if _, err := tx.ExecContext(ctx, createMetaQuery); err != nil {
		return fmt.Errorf("init postgres schema: create meta table: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT value FROM event_log_meta WHERE key = 'schema_version';`).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("init postgres schema: read schema version: %w", err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT to_regclass('pickup_events') IS NOT NULL;`).Scan(&exists); err != nil {
		return fmt.Errorf("init postgres schema: look up pickup_events: %w", err)
	}

	if exists && version < SchemaVersion {
		logger.Get().Warn().Msgf("op=eventlog.reset backend=postgres from_version=%d to_version=%d", version, SchemaVersion)
		if _, err := tx.ExecContext(ctx, `DROP TABLE pickup_events;`); err != nil {
			return fmt.Errorf("init postgres schema: drop outdated pickup_events: %w", err)
		}
	}

	createEventsQuery := `
	CREATE TABLE IF NOT EXISTS pickup_events (
		id BIGSERIAL PRIMARY KEY,
		recorded_at TIMESTAMPTZ NOT NULL,
		time_of_day_seconds INTEGER NOT NULL,
		hour SMALLINT NOT NULL,
		minute SMALLINT NOT NULL,
		pickup_floor INTEGER NOT NULL,
		cabin_floor INTEGER NOT NULL,
		wait_seconds INTEGER NOT NULL,
		occupancy_before INTEGER NOT NULL,
		state TEXT NOT NULL,
		kind TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pickup_events_hour_floor
	ON pickup_events(hour, pickup_floor);
	`

	statements := []string{
		createEventsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	setVersionQuery := `
	INSERT INTO event_log_meta (key, value)
	VALUES ('schema_version', $1)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value;
	`
	if _, err := tx.ExecContext(ctx, setVersionQuery, SchemaVersion); err != nil {
		return fmt.Errorf("init postgres schema: store schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
