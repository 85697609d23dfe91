package eventlog

import (
	"context"
	"database/sql"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// SQLEventLog is a Postgres-backed EventLog.
type SQLEventLog struct {
	DB *sql.DB
}

func NewSQLEventLog(db *sql.DB) *SQLEventLog {
	return &SQLEventLog{DB: db}
}

const sqlInsertEvent = `
	INSERT INTO pickup_events (
		recorded_at,
		time_of_day_seconds,
		hour,
		minute,
		pickup_floor,
		cabin_floor,
		wait_seconds,
		occupancy_before,
		state,
		kind
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

func (s *SQLEventLog) Record(ctx context.Context, rec domain.EventRecord) (err error) {
	defer obs.Time(ctx, "eventlog.sql.Record")(&err)

	if s.DB == nil {
		return errors.New("sql event log: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, sqlInsertEvent, sqlArgs(rec)...); err != nil {
		return fmt.Errorf("record event pickup_floor=%d: %w", rec.PickupFloor, err)
	}
	return nil
}

// Append many records in one transaction.
func (s *SQLEventLog) RecordMany(ctx context.Context, recs []domain.EventRecord) (err error) {
	defer obs.Time(ctx, "eventlog.sql.RecordMany")(&err)

	if s.DB == nil {
		return errors.New("sql event log: db is nil")
	}

	if len(recs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record events: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, sqlInsertEvent)
	if err != nil {
		return fmt.Errorf("record events: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		if _, err := stmt.ExecContext(ctx, sqlArgs(rec)...); err != nil {
			return fmt.Errorf("record events: insert #%d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record events commit: %w", err)
	}

	return nil
}

func (s *SQLEventLog) Count(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sql event log: db is nil")
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM pickup_events;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// Return up to limit records, newest first.
func (s *SQLEventLog) Recent(ctx context.Context, limit int) (_ []domain.EventRecord, err error) {
	defer obs.Time(ctx, "eventlog.sql.Recent")(&err)

	if s.DB == nil {
		return nil, errors.New("sql event log: db is nil")
	}

	if limit <= 0 {
		return []domain.EventRecord{}, nil
	}

	q := `
	SELECT recorded_at, time_of_day_seconds, pickup_floor, cabin_floor,
		wait_seconds, occupancy_before, state, kind
	FROM pickup_events
	ORDER BY id DESC
	LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: query pickup_events table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.EventRecord, 0, limit)
	for rows.Next() {
		var rec domain.EventRecord
		var kind string
		var todSeconds int
		if err := rows.Scan(&rec.RecordedAt, &todSeconds, &rec.PickupFloor, &rec.CabinFloor,
			&rec.WaitSeconds, &rec.OccupancyBefore, &rec.State, &kind); err != nil {
			return nil, fmt.Errorf("recent events: scan rows: %w", err)
		}
		rec.TimeOfDay = time.Duration(todSeconds) * time.Second
		rec.Kind = domain.EventKind(kind)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent events: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLEventLog) Clear(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sql event log: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `TRUNCATE pickup_events;`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	return nil
}

func sqlArgs(rec domain.EventRecord) []any {
	return []any{
		rec.RecordedAt,
		int(rec.TimeOfDay / time.Second),
		rec.Hour(),
		rec.Minute(),
		rec.PickupFloor,
		rec.CabinFloor,
		rec.WaitSeconds,
		rec.OccupancyBefore,
		rec.State,
		string(rec.Kind),
	}
}
