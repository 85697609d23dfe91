package domain

import (
	"errors"
	"testing"
	"time"
)

func TestPickupRequestAdvanceIsMonotonic(t *testing.T) {
	req := &PickupRequest{ID: 1, PickupFloor: 3}

	if err := req.Advance(Completed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Pending -> Completed err = %v, want ErrInvalidTransition", err)
	}
	if err := req.Advance(PickedUp); err != nil {
		t.Fatalf("Pending -> PickedUp: unexpected error: %v", err)
	}
	if err := req.Advance(Pending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("PickedUp -> Pending err = %v, want ErrInvalidTransition", err)
	}
	if err := req.Advance(Completed); err != nil {
		t.Fatalf("PickedUp -> Completed: unexpected error: %v", err)
	}
	if err := req.Advance(Completed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Completed -> Completed err = %v, want ErrInvalidTransition", err)
	}
}

func TestPickupRequestBoardStampsWait(t *testing.T) {
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	req := &PickupRequest{ID: 7, PickupFloor: 2, CreatedAt: created}

	if err := req.Board(created.Add(4500 * time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != PickedUp {
		t.Fatalf("status = %v, want PickedUp", req.Status)
	}
	if req.WaitSeconds == nil || *req.WaitSeconds != 4 {
		t.Fatalf("wait seconds = %v, want 4", req.WaitSeconds)
	}
	if !req.Stranded() {
		t.Fatalf("boarded request without destination should be stranded")
	}
}

func TestClockIgnoresOutOfRangeTime(t *testing.T) {
	var c Clock

	if !c.SetTimeOfDay(8, 30) {
		t.Fatalf("8:30 rejected")
	}
	for _, hm := range [][2]int{{24, 0}, {-1, 10}, {12, 60}, {5, -3}} {
		if c.SetTimeOfDay(hm[0], hm[1]) {
			t.Errorf("%02d:%02d accepted", hm[0], hm[1])
		}
	}
	if got := FormatHM(c.TimeOfDay); got != "08:30" {
		t.Fatalf("time of day = %s, want 08:30", got)
	}
}

func TestClockElapsedStartsOnce(t *testing.T) {
	var c Clock
	t0 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	if c.Elapsed(t0) != 0 {
		t.Fatalf("elapsed before start should be zero")
	}
	c.Start(t0)
	c.Start(t0.Add(time.Minute))

	if got := FormatHMS(c.Elapsed(t0.Add(3725 * time.Second))); got != "01:02:05" {
		t.Fatalf("elapsed = %s, want 01:02:05", got)
	}
}

func TestStatusLogNewestFirstAndBounded(t *testing.T) {
	l := NewStatusLog(2)
	t0 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	l.Add(t0, "a")
	l.Add(t0.Add(time.Second), "b")
	l.Add(t0.Add(2*time.Second), "c")

	got := l.Entries()
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].Message != "c" || got[1].Message != "b" {
		t.Fatalf("entries = %v, want [c b]", got)
	}
}

func TestParseHMSRoundTrip(t *testing.T) {
	d := 8*time.Hour + 15*time.Minute + 9*time.Second
	got, err := ParseHMS(FormatHMS(d))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != d {
		t.Fatalf("parsed = %v, want %v", got, d)
	}
	if _, err := ParseHMS("08:75:00"); err == nil {
		t.Fatalf("08:75:00 parsed without error")
	}
}

func TestSnapshotCloneSharesNothing(t *testing.T) {
	dest, wait := 6, 4
	orig := Snapshot{
		Version:      3,
		Requests:     []PickupRequest{{ID: 1, PickupFloor: 2, DestinationFloor: &dest, WaitSeconds: &wait, Status: PickedUp}},
		Destinations: []int{6},
		StatusLog:    []StatusEntry{{Message: "Stopping at floor 2"}},
	}

	c := orig.Clone()
	*c.Requests[0].DestinationFloor = 9
	*c.Requests[0].WaitSeconds = 0
	c.Requests[0].Status = Completed
	c.Destinations[0] = 9
	c.StatusLog[0].Message = "changed"

	r := orig.Requests[0]
	if *r.DestinationFloor != 6 || *r.WaitSeconds != 4 || r.Status != PickedUp {
		t.Fatalf("original request changed: %+v", r)
	}
	if orig.Destinations[0] != 6 || orig.StatusLog[0].Message != "Stopping at floor 2" {
		t.Fatalf("original slices changed: %v %v", orig.Destinations, orig.StatusLog)
	}
	if c.Version != 3 {
		t.Fatalf("clone version = %d, want 3", c.Version)
	}
}
