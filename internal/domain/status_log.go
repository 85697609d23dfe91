package domain

import "time"

// StatusEntry is one line of the running status log shown to operators.
type StatusEntry struct {
	At      time.Time
	Message string
}

// StatusLog keeps the newest entries first and drops the oldest past its limit.
type StatusLog struct {
	limit   int
	entries []StatusEntry
}

func NewStatusLog(limit int) *StatusLog {
	if limit < 1 {
		limit = 1
	}
	return &StatusLog{limit: limit}
}

func (l *StatusLog) Add(at time.Time, msg string) {
	l.entries = append([]StatusEntry{{At: at, Message: msg}}, l.entries...)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

// Entries returns a copy, most recent first.
func (l *StatusLog) Entries() []StatusEntry {
	out := make([]StatusEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
