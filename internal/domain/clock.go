package domain

import (
	"fmt"
	"time"
)

// Clock holds the elapsed simulation duration and the externally supplied time of day.
// It carries no scheduling logic.
type Clock struct {
	StartedAt time.Time
	Running   bool
	TimeOfDay time.Duration
}

// Start begins the elapsed-time count; later calls are no-ops.
func (c *Clock) Start(now time.Time) {
	if c.Running {
		return
	}
	c.StartedAt = now
	c.Running = true
}

func (c Clock) Elapsed(now time.Time) time.Duration {
	if !c.Running {
		return 0
	}
	return now.Sub(c.StartedAt)
}

// SetTimeOfDay accepts hour in [0,23] and minute in [0,59].
// Out-of-range values leave the previous value in place.
func (c *Clock) SetTimeOfDay(hour, minute int) bool {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return false
	}
	c.TimeOfDay = time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
	return true
}

// FormatHMS renders a duration as hh:mm:ss.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// ParseHMS reads a duration written by FormatHMS.
func ParseHMS(s string) (time.Duration, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("parse hh:mm:ss %q: %w", s, err)
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("parse hh:mm:ss %q: out of range", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatHM renders a time of day as hh:mm.
func FormatHM(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}
