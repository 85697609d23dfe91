package services

import (
	"context"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/ports"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu      sync.Mutex
	records []domain.EventRecord
	fail    bool
}

func (r *recordingSink) Record(ctx context.Context, rec domain.EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("disk full")
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingSink) all() []domain.EventRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.EventRecord(nil), r.records...)
}

type recordingPublisher struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
}

func (p *recordingPublisher) Publish(ctx context.Context, snap domain.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, snap)
	return nil
}

func (p *recordingPublisher) all() []domain.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Snapshot(nil), p.snaps...)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FloorTravelTime = 2 * time.Millisecond
	cfg.DoorOperationTime = 2 * time.Millisecond
	cfg.DoorSteps = 4
	cfg.PassengerMovementTime = time.Millisecond
	cfg.IdleInterval = 2 * time.Millisecond
	cfg.RetryInterval = time.Millisecond
	cfg.DestinationTimeout = 2 * time.Second
	cfg.NotifyBuffer = 100000
	cfg.EventBuffer = 1000
	return cfg
}

func newTestScheduler(t *testing.T, cfg Config, sink ports.EventSink, pub ports.StatePublisher) *Scheduler {
	t.Helper()
	s, err := NewScheduler(cfg, sink, pub)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	return s
}

// start runs s in the background. The returned stop func waits for Run to return,
// which flushes every queued record and snapshot.
func start(t *testing.T, s *Scheduler) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			cancel()
			select {
			case err := <-errCh:
				if !errors.Is(err, context.Canceled) {
					t.Errorf("run returned %v, want context.Canceled", err)
				}
			case <-time.After(5 * time.Second):
				t.Errorf("scheduler did not stop")
			}
		})
	}
	t.Cleanup(stop)
	return stop
}

func waitFor(t *testing.T, s *Scheduler, what string, cond func(domain.Snapshot) bool) domain.Snapshot {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		snap := s.Snapshot()
		if cond(snap) {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	snap := s.Snapshot()
	t.Fatalf("timed out waiting for %s; cabin=%+v requests=%+v", what, snap.Cabin, snap.Requests)
	return snap
}

func requestByID(snap domain.Snapshot, id int) (domain.PickupRequest, bool) {
	for _, r := range snap.Requests {
		if r.ID == id {
			return r, true
		}
	}
	return domain.PickupRequest{}, false
}

func hasStatus(id int, st domain.RequestStatus) func(domain.Snapshot) bool {
	return func(snap domain.Snapshot) bool {
		r, ok := requestByID(snap, id)
		return ok && r.Status == st
	}
}

func settled(snap domain.Snapshot) bool {
	return snap.Cabin.Status == domain.Idle && !snap.InnerPanelOpen && snap.Cabin.DoorOpenFraction == 0
}

// checkInvariants walks every published snapshot in order.
func checkInvariants(t *testing.T, snaps []domain.Snapshot, maxCapacity int) {
	t.Helper()
	if len(snaps) == 0 {
		t.Fatalf("no snapshots published")
	}

	lastStatus := map[int]domain.RequestStatus{}
	var prev *domain.Snapshot
	for i := range snaps {
		snap := snaps[i]

		onboard := 0
		for _, r := range snap.Requests {
			if r.Status == domain.PickedUp {
				onboard++
			}
			if before, ok := lastStatus[r.ID]; ok && r.Status < before {
				t.Fatalf("snapshot %d: request %d went %v -> %v", snap.Version, r.ID, before, r.Status)
			}
			lastStatus[r.ID] = r.Status
		}
		if snap.Cabin.Occupancy != onboard {
			t.Fatalf("snapshot %d: occupancy %d, onboard requests %d", snap.Version, snap.Cabin.Occupancy, onboard)
		}
		if snap.Cabin.Occupancy < 0 || snap.Cabin.Occupancy > maxCapacity {
			t.Fatalf("snapshot %d: occupancy %d outside [0,%d]", snap.Version, snap.Cabin.Occupancy, maxCapacity)
		}
		if f := snap.Cabin.DoorOpenFraction; f < 0 || f > 1 {
			t.Fatalf("snapshot %d: door fraction %v outside [0,1]", snap.Version, f)
		}

		if prev != nil {
			if snap.Version <= prev.Version {
				t.Fatalf("snapshot versions out of order: %d after %d", snap.Version, prev.Version)
			}
			if d := snap.Cabin.Floor - prev.Cabin.Floor; d > 1 || d < -1 {
				t.Fatalf("snapshot %d: cabin jumped from floor %d to %d", snap.Version, prev.Cabin.Floor, snap.Cabin.Floor)
			}
			if snap.Cabin.DoorOpenFraction != prev.Cabin.DoorOpenFraction &&
				snap.Cabin.Status != domain.DoorOpening && snap.Cabin.Status != domain.DoorClosing {
				t.Fatalf("snapshot %d: door moved while %v", snap.Version, snap.Cabin.Status)
			}
			if snap.Cabin.Floor != prev.Cabin.Floor && snap.Cabin.DoorOpenFraction != 0 {
				t.Fatalf("snapshot %d: cabin moved with door at %v", snap.Version, snap.Cabin.DoorOpenFraction)
			}
		}
		prev = &snaps[i]
	}
}

// floorsVisited collapses consecutive duplicates.
func floorsVisited(snaps []domain.Snapshot) []int {
	var out []int
	for _, s := range snaps {
		if len(out) == 0 || out[len(out)-1] != s.Cabin.Floor {
			out = append(out, s.Cabin.Floor)
		}
	}
	return out
}

// doorOpenings lists the floors where each door-opening phase began.
func doorOpenings(snaps []domain.Snapshot) []int {
	var out []int
	prev := domain.Idle
	for _, s := range snaps {
		if s.Cabin.Status == domain.DoorOpening && prev != domain.DoorOpening {
			out = append(out, s.Cabin.Floor)
		}
		prev = s.Cabin.Status
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSchedulerCallThenDestination(t *testing.T) {
	cfg := testConfig()
	sink := &recordingSink{}
	pub := &recordingPublisher{}
	s := newTestScheduler(t, cfg, sink, pub)
	stop := start(t, s)
	ctx := context.Background()

	req, err := s.RequestCall(ctx, 5)
	if err != nil {
		t.Fatalf("request call: %v", err)
	}
	if req.Status != domain.Pending || req.CabinFloorAtCreation != 0 {
		t.Fatalf("new request = %+v, want pending from cabin floor 0", req)
	}

	snap := waitFor(t, s, "passenger boarded at 5", func(snap domain.Snapshot) bool {
		return hasStatus(req.ID, domain.PickedUp)(snap) && snap.InnerPanelOpen
	})
	if snap.Cabin.Floor != 5 || snap.Cabin.Occupancy != 1 {
		t.Fatalf("cabin = %+v, want floor 5 with one passenger", snap.Cabin)
	}
	boarded, _ := requestByID(snap, req.ID)
	if boarded.WaitSeconds == nil || *boarded.WaitSeconds > 1 {
		t.Fatalf("wait seconds = %v, want about 0", boarded.WaitSeconds)
	}
	if !snap.Clock.Running {
		t.Fatalf("first call should start the simulation clock")
	}

	assigned, ok, err := s.SelectDestination(ctx, 12)
	if err != nil || !ok {
		t.Fatalf("select destination: ok=%v err=%v", ok, err)
	}
	if assigned.ID != req.ID || assigned.DestinationFloor == nil || *assigned.DestinationFloor != 12 {
		t.Fatalf("assigned = %+v, want request %d to floor 12", assigned, req.ID)
	}

	snap = waitFor(t, s, "passenger dropped at 12", func(snap domain.Snapshot) bool {
		return hasStatus(req.ID, domain.Completed)(snap) && settled(snap)
	})
	if snap.Cabin.Floor != 12 || snap.Cabin.Occupancy != 0 || len(snap.Destinations) != 0 {
		t.Fatalf("cabin = %+v destinations = %v, want floor 12, empty, no destinations", snap.Cabin, snap.Destinations)
	}

	stop()

	snaps := pub.all()
	checkInvariants(t, snaps, cfg.MaxCapacity)

	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if got := floorsVisited(snaps); !equalInts(got, want) {
		t.Fatalf("floors visited = %v, want %v", got, want)
	}
	if got := doorOpenings(snaps); !equalInts(got, []int{5, 12}) {
		t.Fatalf("door openings = %v, want [5 12]", got)
	}

	records := sink.all()
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Kind != domain.EventPickup || rec.PickupFloor != 5 || rec.CabinFloor != 0 || rec.OccupancyBefore != 0 {
		t.Fatalf("record = %+v, want pickup at 5 called with cabin at 0 and empty cabin", rec)
	}
	if rec.State != domain.WaitingForPassenger.String() {
		t.Fatalf("record state = %q, want %q", rec.State, domain.WaitingForPassenger)
	}
}

func TestSchedulerServesCallsUpwardInOrder(t *testing.T) {
	cfg := testConfig()
	cfg.DestinationTimeout = 20 * time.Millisecond
	sink := &recordingSink{}
	pub := &recordingPublisher{}
	s := newTestScheduler(t, cfg, sink, pub)
	stop := start(t, s)
	ctx := context.Background()

	first, err := s.RequestCall(ctx, 3)
	if err != nil {
		t.Fatalf("call 3: %v", err)
	}
	second, err := s.RequestCall(ctx, 7)
	if err != nil {
		t.Fatalf("call 7: %v", err)
	}

	waitFor(t, s, "both passengers boarded", func(snap domain.Snapshot) bool {
		return hasStatus(first.ID, domain.PickedUp)(snap) && hasStatus(second.ID, domain.PickedUp)(snap) && settled(snap)
	})
	stop()

	snaps := pub.all()
	checkInvariants(t, snaps, cfg.MaxCapacity)

	if got := doorOpenings(snaps); !equalInts(got, []int{3, 7}) {
		t.Fatalf("door openings = %v, want [3 7]", got)
	}

	records := sink.all()
	if len(records) != 2 || records[0].PickupFloor != 3 || records[1].PickupFloor != 7 {
		t.Fatalf("records = %+v, want pickups at 3 then 7", records)
	}
	if records[1].OccupancyBefore != 1 {
		t.Fatalf("second pickup occupancy before = %d, want 1", records[1].OccupancyBefore)
	}
}

func TestSchedulerRejectsPickupWhenFull(t *testing.T) {
	cfg := testConfig()
	cfg.DestinationTimeout = 20 * time.Millisecond
	sink := &recordingSink{}
	pub := &recordingPublisher{}
	s := newTestScheduler(t, cfg, sink, pub)

	// Ten riders headed to 9 board before the loop starts.
	now := s.now()
	for i := 0; i < cfg.MaxCapacity; i++ {
		r := s.ledger.Add(0, now, 0, 0)
		if err := s.ledger.Board(r, now); err != nil {
			t.Fatalf("seed board: %v", err)
		}
		if err := s.ledger.AssignDestinationTo(r, 9); err != nil {
			t.Fatalf("seed destination: %v", err)
		}
	}
	waiting := s.ledger.Add(5, now, 0, 0)
	s.syncOccupancy()
	s.refreshSnapshot()

	stop := start(t, s)

	waitFor(t, s, "waiting caller finally boarded", func(snap domain.Snapshot) bool {
		return hasStatus(waiting.ID, domain.PickedUp)(snap) && settled(snap)
	})
	stop()

	snaps := pub.all()
	checkInvariants(t, snaps, cfg.MaxCapacity)

	if got := doorOpenings(snaps); !equalInts(got, []int{5, 9, 5}) {
		t.Fatalf("door openings = %v, want [5 9 5]", got)
	}

	// On the first visit to 5 the caller stays pending and nobody boards.
	rejectedVisit := false
	for _, snap := range snaps {
		if snap.Cabin.Floor == 5 && snap.Cabin.Status == domain.DoorClosing {
			r, _ := requestByID(snap, waiting.ID)
			if r.Status != domain.Pending || snap.Cabin.Occupancy != cfg.MaxCapacity {
				t.Fatalf("first visit to 5: request %v occupancy %d, want Pending and %d", r.Status, snap.Cabin.Occupancy, cfg.MaxCapacity)
			}
			rejectedVisit = true
			break
		}
	}
	if !rejectedVisit {
		t.Fatalf("no door-closing snapshot at floor 5")
	}

	records := sink.all()
	if len(records) != 2 {
		t.Fatalf("records = %+v, want a rejection and a pickup", records)
	}
	if records[0].Kind != domain.EventCapacityFull || records[0].PickupFloor != 5 || records[0].OccupancyBefore != cfg.MaxCapacity {
		t.Fatalf("first record = %+v, want capacity_full at 5 with occupancy %d", records[0], cfg.MaxCapacity)
	}
	if records[1].Kind != domain.EventPickup || records[1].OccupancyBefore != 0 {
		t.Fatalf("second record = %+v, want pickup into an empty cabin", records[1])
	}
}

func TestSchedulerDestinationTimeoutDoesNotDeadlock(t *testing.T) {
	cfg := testConfig()
	cfg.DestinationTimeout = 20 * time.Millisecond
	pub := &recordingPublisher{}
	s := newTestScheduler(t, cfg, &recordingSink{}, pub)
	stop := start(t, s)
	ctx := context.Background()

	first, err := s.RequestCall(ctx, 2)
	if err != nil {
		t.Fatalf("call 2: %v", err)
	}
	snap := waitFor(t, s, "doors closed after timeout", func(snap domain.Snapshot) bool {
		return hasStatus(first.ID, domain.PickedUp)(snap) && settled(snap)
	})
	r, _ := requestByID(snap, first.ID)
	if r.DestinationFloor != nil {
		t.Fatalf("destination = %d, want unset", *r.DestinationFloor)
	}
	if snap.Stranded() != 1 {
		t.Fatalf("stranded = %d, want 1", snap.Stranded())
	}

	// The loop keeps serving new calls.
	second, err := s.RequestCall(ctx, 4)
	if err != nil {
		t.Fatalf("call 4: %v", err)
	}
	waitFor(t, s, "second caller boarded", hasStatus(second.ID, domain.PickedUp))

	// A late selection still reaches a stranded rider.
	assigned, ok, err := s.SelectDestination(ctx, 0)
	if err != nil || !ok {
		t.Fatalf("late destination: ok=%v err=%v", ok, err)
	}
	waitFor(t, s, "late rider delivered", hasStatus(assigned.ID, domain.Completed))

	stop()
	checkInvariants(t, pub.all(), cfg.MaxCapacity)
}

func TestSchedulerFallbackPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.DestinationTimeout = 10 * time.Millisecond
	cfg.TimeoutPolicy = TimeoutFallback
	cfg.FallbackFloor = 0
	pub := &recordingPublisher{}
	s := newTestScheduler(t, cfg, nil, pub)
	stop := start(t, s)
	ctx := context.Background()

	upstairs, err := s.RequestCall(ctx, 3)
	if err != nil {
		t.Fatalf("call 3: %v", err)
	}
	snap := waitFor(t, s, "fallback delivery to lobby", func(snap domain.Snapshot) bool {
		return hasStatus(upstairs.ID, domain.Completed)(snap) && settled(snap)
	})
	if snap.Cabin.Floor != 0 {
		t.Fatalf("cabin floor = %d, want 0", snap.Cabin.Floor)
	}

	lobby, err := s.RequestCall(ctx, 0)
	if err != nil {
		t.Fatalf("call 0: %v", err)
	}
	snap = waitFor(t, s, "lobby caller released", func(snap domain.Snapshot) bool {
		return hasStatus(lobby.ID, domain.Completed)(snap) && settled(snap)
	})
	if snap.Cabin.Occupancy != 0 || snap.Cabin.Floor != 0 {
		t.Fatalf("cabin = %+v, want empty at floor 0", snap.Cabin)
	}

	stop()
	checkInvariants(t, pub.all(), cfg.MaxCapacity)
}

func TestSchedulerCallAtCurrentFloorSkipsTravel(t *testing.T) {
	cfg := testConfig()
	cfg.DestinationTimeout = 10 * time.Millisecond
	pub := &recordingPublisher{}
	s := newTestScheduler(t, cfg, nil, pub)
	stop := start(t, s)

	req, err := s.RequestCall(context.Background(), 0)
	if err != nil {
		t.Fatalf("call 0: %v", err)
	}
	waitFor(t, s, "same-floor pickup", func(snap domain.Snapshot) bool {
		return hasStatus(req.ID, domain.PickedUp)(snap) && settled(snap)
	})
	stop()

	snaps := pub.all()
	checkInvariants(t, snaps, cfg.MaxCapacity)
	for _, snap := range snaps {
		if snap.Cabin.Floor != 0 || snap.Cabin.Status.Moving() {
			t.Fatalf("snapshot %d: cabin %+v, want it to stay at floor 0", snap.Version, snap.Cabin)
		}
	}
}

func TestSchedulerRiderSelectsOwnFloorWhileAnotherIsStranded(t *testing.T) {
	cfg := testConfig()
	pub := &recordingPublisher{}
	s := newTestScheduler(t, cfg, nil, pub)

	// A rider boarded at 1 earlier and never chose a floor.
	now := s.now()
	earlier := s.ledger.Add(1, now, 0, 0)
	if err := s.ledger.Board(earlier, now); err != nil {
		t.Fatalf("seed board: %v", err)
	}
	s.syncOccupancy()
	s.refreshSnapshot()

	stop := start(t, s)
	ctx := context.Background()

	here, err := s.RequestCall(ctx, 4)
	if err != nil {
		t.Fatalf("call 4: %v", err)
	}
	waitFor(t, s, "panel open at 4", func(snap domain.Snapshot) bool {
		return hasStatus(here.ID, domain.PickedUp)(snap) && snap.InnerPanelOpen && snap.Cabin.Floor == 4
	})

	got, ok, err := s.SelectDestination(ctx, 4)
	if err != nil || !ok {
		t.Fatalf("select destination: ok=%v err=%v", ok, err)
	}
	if got.ID != here.ID || got.Status != domain.Completed {
		t.Fatalf("selection went to %+v, want request %d completed at once", got, here.ID)
	}

	snap := waitFor(t, s, "doors closed at 4", settled)
	r, _ := requestByID(snap, earlier.ID)
	if !r.Stranded() {
		t.Fatalf("earlier rider = %+v, want still awaiting a destination", r)
	}
	if snap.Cabin.Occupancy != 1 || snap.Cabin.Floor != 4 || len(snap.Destinations) != 0 {
		t.Fatalf("cabin = %+v destinations = %v, want one rider at 4 and no destinations", snap.Cabin, snap.Destinations)
	}

	stop()
	snaps := pub.all()
	checkInvariants(t, snaps, cfg.MaxCapacity)
	if got := doorOpenings(snaps); !equalInts(got, []int{4}) {
		t.Fatalf("door openings = %v, want [4]", got)
	}
}

func TestSchedulerNotifyKeepsNewestWhenQueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.NotifyBuffer = 1
	s := newTestScheduler(t, cfg, nil, &recordingPublisher{})

	// Nothing drains the queue before Run starts.
	for i := 0; i < 5; i++ {
		s.publish()
	}

	select {
	case snap := <-s.notices:
		if want := s.Snapshot().Version; snap.Version != want {
			t.Fatalf("queued version = %d, want newest %d", snap.Version, want)
		}
	default:
		t.Fatalf("notification queue is empty")
	}
}

func TestSchedulerSurvivesSinkFailures(t *testing.T) {
	cfg := testConfig()
	s := newTestScheduler(t, cfg, &recordingSink{fail: true}, nil)
	start(t, s)
	ctx := context.Background()

	req, err := s.RequestCall(ctx, 1)
	if err != nil {
		t.Fatalf("call 1: %v", err)
	}
	waitFor(t, s, "boarded", func(snap domain.Snapshot) bool {
		return hasStatus(req.ID, domain.PickedUp)(snap) && snap.InnerPanelOpen
	})
	if _, ok, err := s.SelectDestination(ctx, 2); err != nil || !ok {
		t.Fatalf("select destination: ok=%v err=%v", ok, err)
	}
	waitFor(t, s, "delivered", hasStatus(req.ID, domain.Completed))
}

func TestSchedulerInputs(t *testing.T) {
	cfg := testConfig()
	sink := &recordingSink{}
	s := newTestScheduler(t, cfg, sink, nil)
	stop := start(t, s)
	ctx := context.Background()

	if _, err := s.RequestCall(ctx, cfg.Floors); !errors.Is(err, domain.ErrFloorOutOfRange) {
		t.Fatalf("call above top floor err = %v, want ErrFloorOutOfRange", err)
	}
	if _, _, err := s.SelectDestination(ctx, -1); !errors.Is(err, domain.ErrFloorOutOfRange) {
		t.Fatalf("destination below ground err = %v, want ErrFloorOutOfRange", err)
	}
	if _, ok, err := s.SelectDestination(ctx, 3); err != nil || ok {
		t.Fatalf("destination with empty cabin: ok=%v err=%v, want no-op", ok, err)
	}

	if ok, err := s.SetSimulationClock(ctx, 24, 0); err != nil || ok {
		t.Fatalf("24:00 accepted=%v err=%v, want ignored", ok, err)
	}
	if ok, err := s.SetSimulationClock(ctx, 8, 15); err != nil || !ok {
		t.Fatalf("08:15 accepted=%v err=%v", ok, err)
	}
	if ok, _ := s.SetSimulationClock(ctx, 7, 99); ok {
		t.Fatalf("07:99 accepted")
	}

	req, err := s.RequestCall(ctx, 2)
	if err != nil {
		t.Fatalf("call 2: %v", err)
	}
	want := 8*time.Hour + 15*time.Minute
	if req.SimulationClockAtCreation != want {
		t.Fatalf("clock at creation = %v, want %v", req.SimulationClockAtCreation, want)
	}

	waitFor(t, s, "boarded", hasStatus(req.ID, domain.PickedUp))
	stop()

	records := sink.all()
	if len(records) != 1 || records[0].TimeOfDay != want || records[0].Hour() != 8 || records[0].Minute() != 15 {
		t.Fatalf("records = %+v, want one pickup stamped 08:15", records)
	}
}

func TestSchedulerSnapshotIsACopy(t *testing.T) {
	s := newTestScheduler(t, testConfig(), nil, nil)
	start(t, s)

	req, err := s.RequestCall(context.Background(), 6)
	if err != nil {
		t.Fatalf("call 6: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(snap.Requests))
	}
	snap.Requests[0].Status = domain.Completed
	snap.Requests[0].PickupFloor = 99
	snap.StatusLog = nil

	again := s.Snapshot()
	r, _ := requestByID(again, req.ID)
	if r.PickupFloor != 6 || r.Status == domain.Completed {
		t.Fatalf("mutating a snapshot leaked into the scheduler: %+v", r)
	}
	if len(again.StatusLog) == 0 {
		t.Fatalf("status log should not be empty")
	}
}

func TestSchedulerStoppedRejectsInput(t *testing.T) {
	s := newTestScheduler(t, testConfig(), nil, nil)
	stop := start(t, s)
	stop()

	if _, err := s.RequestCall(context.Background(), 1); !errors.Is(err, ErrSchedulerStopped) {
		t.Fatalf("call after stop err = %v, want ErrSchedulerStopped", err)
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second run err = %v, want ErrAlreadyRunning", err)
	}
}
