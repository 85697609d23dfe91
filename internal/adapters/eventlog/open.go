package eventlog

import (
	"context"
	"database/sql"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/platform/db"
	"elevator-sim-service/internal/ports"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type Backend string

const (
	BackendCSV      Backend = "csv"
	BackendSqlite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendCSV, BackendSqlite, BackendPostgres:
		return b, nil
	case "":
		return BackendSqlite, nil
	default:
		return "", fmt.Errorf("unknown event sink %q (want csv, sqlite or postgres)", s)
	}
}

type Options struct {
	Backend     Backend
	CSVPath     string
	SqlitePath  string
	DatabaseURL string
}

// Store is an opened event log plus whatever must be closed with it.
type Store struct {
	ports.EventLog
	Backend Backend
	db      *sql.DB
}

// RecordMany appends recs in one transaction on SQL backends and one by one on CSV.
func (s *Store) RecordMany(ctx context.Context, recs []domain.EventRecord) error {
	if batch, ok := s.EventLog.(interface {
		RecordMany(context.Context, []domain.EventRecord) error
	}); ok {
		return batch.RecordMany(ctx, recs)
	}
	for i, rec := range recs {
		if err := s.Record(ctx, rec); err != nil {
			return fmt.Errorf("record events: #%d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Open connects the configured backend and brings its schema up to date.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch opts.Backend {
	case BackendCSV:
		l, err := NewCSVEventLog(opts.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		return &Store{EventLog: l, Backend: BackendCSV}, nil

	case BackendSqlite:
		if dir := filepath.Dir(opts.SqlitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("open event log: create dir %q: %w", dir, err)
			}
		}
		conn, err := db.OpenSqlite(opts.SqlitePath)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		if err := InitSqliteSchema(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("open event log: %w", err)
		}
		return &Store{EventLog: NewSqliteEventLog(conn), Backend: BackendSqlite, db: conn}, nil

	case BackendPostgres:
		if strings.TrimSpace(opts.DatabaseURL) == "" {
			return nil, fmt.Errorf("open event log: DATABASE_URL is required for the postgres sink")
		}
		conn, err := db.Open(opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		if err := InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("open event log: %w", err)
		}
		return &Store{EventLog: NewSQLEventLog(conn), Backend: BackendPostgres, db: conn}, nil

	default:
		return nil, fmt.Errorf("open event log: unknown backend %q", opts.Backend)
	}
}
