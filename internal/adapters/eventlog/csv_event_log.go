package eventlog

import (
	"context"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/platform/logger"
	"elevator-sim-service/internal/platform/obs"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"
)

// csvHeader is the schema-v2 header row. Any other first row means an older or
// foreign layout and resets the file.
var csvHeader = []string{
	"recorded_at",
	"time_of_day",
	"hour",
	"minute",
	"pickup_floor",
	"cabin_floor",
	"wait_seconds",
	"occupancy_before",
	"state",
	"kind",
}

// CSVEventLog appends event records to a local CSV file, one row per record.
type CSVEventLog struct {
	path string
	mu   sync.Mutex
}

// NewCSVEventLog opens (or creates) the file at path, resetting it when its header
// does not match the current schema.
func NewCSVEventLog(path string) (*CSVEventLog, error) {
	if path == "" {
		return nil, errors.New("csv event log: path must not be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("csv event log: create dir %q: %w", dir, err)
		}
	}

	l := &CSVEventLog{path: path}
	if err := l.ensureHeader(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *CSVEventLog) ensureHeader() error {
	f, err := os.OpenFile(l.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("csv event log: open %q: %w", l.path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	f.Close()

	switch {
	case errors.Is(err, io.EOF):
		return l.truncate()
	case err == nil && slices.Equal(header, csvHeader):
		return nil
	default:
		logger.Get().Warn().Msgf("op=eventlog.reset backend=csv path=%s header=%q", l.path, header)
		return l.truncate()
	}
}

// truncate rewrites the file with only the header row.
func (l *CSVEventLog) truncate() error {
	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("csv event log: truncate %q: %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv event log: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv event log: flush header: %w", err)
	}
	return nil
}

func (l *CSVEventLog) Record(ctx context.Context, rec domain.EventRecord) (err error) {
	defer obs.Time(ctx, "eventlog.csv.Record")(&err)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("record event: open %q: %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(encodeRow(rec)); err != nil {
		return fmt.Errorf("record event pickup_floor=%d: %w", rec.PickupFloor, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("record event pickup_floor=%d: flush: %w", rec.PickupFloor, err)
	}
	return nil
}

// Count returns the number of data rows, excluding the header.
func (l *CSVEventLog) Count(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.readRows()
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return len(rows), nil
}

// Recent returns up to limit records, newest first. Rows that no longer parse are
// skipped.
func (l *CSVEventLog) Recent(ctx context.Context, limit int) ([]domain.EventRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		return []domain.EventRecord{}, nil
	}

	rows, err := l.readRows()
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}

	out := make([]domain.EventRecord, 0, min(limit, len(rows)))
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		rec, err := decodeRow(rows[i])
		if err != nil {
			logger.Get().Warn().Msgf("op=eventlog.csv.Recent skip row=%d err=%v", i+2, err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (l *CSVEventLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.truncate()
}

// readRows returns every row after the header.
func (l *CSVEventLog) readRows() ([][]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", l.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

// ReadCSVFile loads every record of a schema-v2 CSV event file, oldest first.
func ReadCSVFile(path string) ([]domain.EventRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read events: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read events: parse %q: %w", path, err)
	}
	if len(rows) == 0 || !slices.Equal(rows[0], csvHeader) {
		return nil, fmt.Errorf("read events: %q is not a schema v%d event file", path, SchemaVersion)
	}

	out := make([]domain.EventRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("read events: row %d: %w", i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func encodeRow(rec domain.EventRecord) []string {
	return []string{
		rec.RecordedAt.Format(time.RFC3339),
		domain.FormatHMS(rec.TimeOfDay),
		strconv.Itoa(rec.Hour()),
		strconv.Itoa(rec.Minute()),
		strconv.Itoa(rec.PickupFloor),
		strconv.Itoa(rec.CabinFloor),
		strconv.Itoa(rec.WaitSeconds),
		strconv.Itoa(rec.OccupancyBefore),
		rec.State,
		string(rec.Kind),
	}
}

func decodeRow(row []string) (domain.EventRecord, error) {
	var rec domain.EventRecord
	if len(row) != len(csvHeader) {
		return rec, fmt.Errorf("want %d fields, got %d", len(csvHeader), len(row))
	}

	recordedAt, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return rec, fmt.Errorf("recorded_at: %w", err)
	}
	tod, err := domain.ParseHMS(row[1])
	if err != nil {
		return rec, fmt.Errorf("time_of_day: %w", err)
	}

	ints := make([]int, 0, 4)
	for _, idx := range []int{4, 5, 6, 7} {
		v, err := strconv.Atoi(row[idx])
		if err != nil {
			return rec, fmt.Errorf("%s: %w", csvHeader[idx], err)
		}
		ints = append(ints, v)
	}

	rec = domain.EventRecord{
		RecordedAt:      recordedAt,
		TimeOfDay:       tod,
		PickupFloor:     ints[0],
		CabinFloor:      ints[1],
		WaitSeconds:     ints[2],
		OccupancyBefore: ints[3],
		State:           row[8],
		Kind:            domain.EventKind(row[9]),
	}
	return rec, nil
}
