package services

import (
	"context"
	"elevator-sim-service/internal/domain"
	"elevator-sim-service/internal/platform/logger"
	"elevator-sim-service/internal/ports"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/tiendc/go-deepcopy"
)

var (
	ErrSchedulerStopped = errors.New("scheduler stopped")
	ErrAlreadyRunning   = errors.New("scheduler already running")
)

// Scheduler is the dispatch engine for a single cabin.
//
// All cabin and ledger state is owned by the goroutine executing Run. Inputs are sent
// to that goroutine as commands and applied only at its suspension points (floor
// travel, door sub-steps, passenger movement, destination wait, idle pauses), so
// nothing else ever mutates the state. Readers get deep-copied snapshots.
type Scheduler struct {
	cfg       Config
	sink      ports.EventSink
	publisher ports.StatePublisher
	now       func() time.Time
	log       *zerolog.Logger

	cmds    chan command
	done    chan struct{}
	running atomic.Bool

	events  chan domain.EventRecord
	notices chan domain.Snapshot

	// Owned by the Run goroutine.
	cabin     domain.CabinState
	ledger    *domain.Ledger
	clock     domain.Clock
	panelOpen bool
	status    *domain.StatusLog
	version   uint64

	mu       sync.RWMutex
	snapshot domain.Snapshot
}

// NewScheduler builds an idle cabin at floor 0. sink and publisher may be nil.
func NewScheduler(cfg Config, sink ports.EventSink, publisher ports.StatePublisher) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}

	s := &Scheduler{
		cfg:       cfg,
		sink:      sink,
		publisher: publisher,
		now:       time.Now,
		log:       logger.Get(),
		cmds:      make(chan command),
		done:      make(chan struct{}),
		events:    make(chan domain.EventRecord, max(cfg.EventBuffer, 1)),
		notices:   make(chan domain.Snapshot, max(cfg.NotifyBuffer, 1)),
		ledger:    domain.NewLedger(),
		status:    domain.NewStatusLog(cfg.StatusLogSize),
	}
	s.status.Add(s.now(), "Select a floor to call the elevator")
	s.refreshSnapshot()

	return s, nil
}

func (s *Scheduler) Config() Config { return s.cfg }

// Run drives the control loop until ctx is cancelled. A stop operation in progress is
// only interrupted by shutdown, never by new input. Buffered event records and
// notifications are flushed before Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	// Workers outlive ctx so the final records still reach the sink.
	workerCtx := context.WithoutCancel(ctx)
	var wg sync.WaitGroup
	if s.sink != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.recordEvents(workerCtx)
		}()
	}
	if s.publisher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.publishStates(workerCtx)
		}()
	}

	defer func() {
		close(s.done)
		close(s.events)
		close(s.notices)
		wg.Wait()
	}()

	s.log.Info().Msgf("scheduler started floors=%d capacity=%d", s.cfg.Floors, s.cfg.MaxCapacity)
	s.publish()

	for {
		if err := s.step(ctx); err != nil {
			s.log.Info().Msgf("scheduler stopped reason=%v", err)
			return err
		}
	}
}

// step runs one iteration of the main loop.
func (s *Scheduler) step(ctx context.Context) error {
	if !s.ledger.Active() {
		s.setStatus(domain.Idle)
		return s.waitForCommand(ctx)
	}

	floor := s.cabin.Floor
	if s.shouldStopAt(floor) {
		return s.serveStop(ctx, floor)
	}

	pickups := s.pickupTargets()
	destinations := s.ledger.DestinationFloors()

	dir := DetermineDirection(floor, s.cabin.Status, pickups, destinations)
	if dir == domain.DirectionNone {
		s.setStatus(domain.Idle)
		return s.pause(ctx, s.cfg.IdleInterval)
	}

	stops := CollectStopsInDirection(floor, dir, pickups, destinations)
	if len(stops) == 0 {
		return s.pause(ctx, s.cfg.RetryInterval)
	}
	next := stops[0]

	if s.cabin.Status != dir.MovingStatus() {
		s.setStatus(dir.MovingStatus())
		s.logStatus("Heading %s to floor %d", dir, next)
	}

	if err := s.pause(ctx, s.cfg.FloorTravelTime); err != nil {
		return err
	}
	s.cabin.Floor += dir.Delta()
	s.publish()

	if s.cabin.Floor == next {
		return s.serveStop(ctx, next)
	}
	return nil
}

// shouldStopAt covers drop-offs here and calls made for the floor the cabin already
// occupies. A full cabin does not reopen for pickups it can not take.
func (s *Scheduler) shouldStopAt(floor int) bool {
	if s.ledger.HasDestination(floor) {
		return true
	}
	return len(s.ledger.PendingAt(floor)) > 0 && s.cabin.Occupancy < s.cfg.MaxCapacity
}

// pickupTargets returns the pending pickup floors worth travelling to. While the cabin
// is full and no rider has a destination nothing can free space, so pickups are not
// targets until a destination is selected.
func (s *Scheduler) pickupTargets() []int {
	if s.cabin.Occupancy >= s.cfg.MaxCapacity && len(s.ledger.DestinationFloors()) == 0 {
		return nil
	}
	return s.ledger.PendingPickupFloors()
}

// pause suspends the loop for d while still applying incoming commands.
func (s *Scheduler) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-s.cmds:
			cmd.apply(s)
		default:
		}
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case cmd := <-s.cmds:
			cmd.apply(s)
		}
	}
}

// waitForCommand blocks an idle loop until the next input arrives.
func (s *Scheduler) waitForCommand(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case cmd := <-s.cmds:
		cmd.apply(s)
		return nil
	}
}

func (s *Scheduler) setStatus(st domain.CabinStatus) {
	if s.cabin.Status == st {
		return
	}
	s.cabin.Status = st
	s.publish()
}

func (s *Scheduler) syncOccupancy() {
	s.cabin.Occupancy = s.ledger.Onboard()
}

func (s *Scheduler) logStatus(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.status.Add(s.now(), msg)
	s.log.Info().Msgf("floor=%d state=%s occupancy=%d msg=%q", s.cabin.Floor, s.cabin.Status, s.cabin.Occupancy, msg)
}

// emit hands a record to the sink worker without ever blocking dispatch.
func (s *Scheduler) emit(rec domain.EventRecord) {
	if s.sink == nil {
		return
	}
	select {
	case s.events <- rec:
	default:
		s.log.Warn().Msgf("op=event.emit dropped pickup_floor=%d kind=%s", rec.PickupFloor, rec.Kind)
	}
}

func (s *Scheduler) recordEvents(ctx context.Context) {
	for rec := range s.events {
		recCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := s.sink.Record(recCtx, rec); err != nil {
			s.log.Warn().Msgf("op=event.record pickup_floor=%d kind=%s err=%v", rec.PickupFloor, rec.Kind, err)
		}
		cancel()
	}
}

func (s *Scheduler) publishStates(ctx context.Context) {
	for snap := range s.notices {
		pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := s.publisher.Publish(pubCtx, snap); err != nil {
			s.log.Warn().Msgf("op=state.publish version=%d err=%v", snap.Version, err)
		}
		cancel()
	}
}

// publish refreshes the readable snapshot and queues a notification.
func (s *Scheduler) publish() {
	snap := s.refreshSnapshot()
	if s.publisher == nil {
		return
	}
	select {
	case s.notices <- snap:
		return
	default:
	}

	// Queue full: drop the oldest pending state so the newest one always goes out.
	select {
	case old := <-s.notices:
		s.log.Warn().Msgf("op=state.notify dropped version=%d", old.Version)
	default:
	}
	select {
	case s.notices <- snap:
	default:
		s.log.Warn().Msgf("op=state.notify dropped version=%d", snap.Version)
	}
}

func (s *Scheduler) refreshSnapshot() domain.Snapshot {
	s.version++

	live := s.ledger.Requests()
	var requests []domain.PickupRequest
	if err := deepcopy.Copy(&requests, &live); err != nil {
		s.log.Error().Msgf("op=snapshot.copy err=%v", err)
		requests = make([]domain.PickupRequest, len(live))
		for i, r := range live {
			requests[i] = r.Clone()
		}
	}

	snap := domain.Snapshot{
		Version:        s.version,
		TakenAt:        s.now(),
		Cabin:          s.cabin,
		Requests:       requests,
		Destinations:   s.ledger.DestinationFloors(),
		InnerPanelOpen: s.panelOpen,
		Clock:          s.clock,
		StatusLog:      s.status.Entries(),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	return snap
}

// Snapshot returns a copy of the latest state that callers may keep or modify.
func (s *Scheduler) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out domain.Snapshot
	if err := deepcopy.Copy(&out, &s.snapshot); err != nil {
		s.log.Error().Msgf("op=snapshot.read err=%v", err)
		return s.snapshot.Clone()
	}
	return out
}

// RequestCall enqueues a pickup request for floor. The first call starts the
// simulation clock.
func (s *Scheduler) RequestCall(ctx context.Context, floor int) (domain.PickupRequest, error) {
	if err := s.checkFloor(floor); err != nil {
		return domain.PickupRequest{}, fmt.Errorf("request call: %w", err)
	}

	cmd := callCommand{floor: floor, reply: make(chan domain.PickupRequest, 1)}
	if err := s.submit(ctx, cmd); err != nil {
		return domain.PickupRequest{}, fmt.Errorf("request call: %w", err)
	}

	select {
	case req := <-cmd.reply:
		return req, nil
	case <-ctx.Done():
		return domain.PickupRequest{}, fmt.Errorf("request call: %w", ctx.Err())
	}
}

// SelectDestination assigns floor to the most recently boarded passenger without a
// destination, preferring one who boarded at the cabin's current floor. ok is false
// when no passenger is eligible; that is not an error.
func (s *Scheduler) SelectDestination(ctx context.Context, floor int) (_ domain.PickupRequest, ok bool, _ error) {
	if err := s.checkFloor(floor); err != nil {
		return domain.PickupRequest{}, false, fmt.Errorf("select destination: %w", err)
	}

	cmd := destinationCommand{floor: floor, reply: make(chan destinationResult, 1)}
	if err := s.submit(ctx, cmd); err != nil {
		return domain.PickupRequest{}, false, fmt.Errorf("select destination: %w", err)
	}

	select {
	case res := <-cmd.reply:
		return res.req, res.ok, nil
	case <-ctx.Done():
		return domain.PickupRequest{}, false, fmt.Errorf("select destination: %w", ctx.Err())
	}
}

// SetSimulationClock sets the time of day attached to later requests. Out-of-range
// values are ignored and reported as not accepted.
func (s *Scheduler) SetSimulationClock(ctx context.Context, hour, minute int) (bool, error) {
	probe := domain.Clock{}
	if !probe.SetTimeOfDay(hour, minute) {
		return false, nil
	}

	cmd := clockCommand{hour: hour, minute: minute, reply: make(chan bool, 1)}
	if err := s.submit(ctx, cmd); err != nil {
		return false, fmt.Errorf("set simulation clock: %w", err)
	}

	select {
	case accepted := <-cmd.reply:
		return accepted, nil
	case <-ctx.Done():
		return false, fmt.Errorf("set simulation clock: %w", ctx.Err())
	}
}

func (s *Scheduler) checkFloor(floor int) error {
	if floor < 0 || floor >= s.cfg.Floors {
		return fmt.Errorf("floor %d outside [0,%d): %w", floor, s.cfg.Floors, domain.ErrFloorOutOfRange)
	}
	return nil
}

func (s *Scheduler) submit(ctx context.Context, cmd command) error {
	select {
	case s.cmds <- cmd:
		return nil
	case <-s.done:
		return ErrSchedulerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) copyRequest(r *domain.PickupRequest) domain.PickupRequest {
	var out domain.PickupRequest
	if err := deepcopy.Copy(&out, r); err != nil {
		s.log.Error().Msgf("op=request.copy id=%d err=%v", r.ID, err)
		return r.Clone()
	}
	return out
}
