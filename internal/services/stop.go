package services

import (
	"context"
	"elevator-sim-service/internal/domain"
	"time"
)

// serveStop runs a full stop operation at floor: open doors, unload riders headed
// here, load waiting callers one by one until the cabin is full, close doors.
// Once started it runs to completion; only shutdown interrupts it.
func (s *Scheduler) serveStop(ctx context.Context, floor int) error {
	hasDropOff := s.ledger.HasDestination(floor)
	s.logStatus("Stopping at floor %d", floor)

	if err := s.animateDoor(ctx, 0, 1, domain.DoorOpening); err != nil {
		return err
	}

	if hasDropOff {
		if err := s.unload(ctx, floor); err != nil {
			return err
		}
	}

	for {
		pending := s.ledger.PendingAt(floor)
		if len(pending) == 0 {
			break
		}
		req := pending[0]

		if s.cabin.Occupancy >= s.cfg.MaxCapacity {
			s.rejectForCapacity(req)
			break
		}
		if err := s.load(ctx, req); err != nil {
			return err
		}
	}

	if err := s.animateDoor(ctx, 1, 0, domain.DoorClosing); err != nil {
		return err
	}
	s.setStatus(domain.Idle)
	return nil
}

func (s *Scheduler) unload(ctx context.Context, floor int) error {
	s.setStatus(domain.WaitingForPassenger)
	if err := s.pause(ctx, s.cfg.PassengerMovementTime); err != nil {
		return err
	}

	n, err := s.ledger.CompleteAt(floor)
	if err != nil {
		s.log.Error().Msgf("op=stop.unload floor=%d err=%v", floor, err)
	}
	s.syncOccupancy()
	s.logStatus("%d passenger(s) left the cabin at floor %d", n, floor)
	s.publish()
	return nil
}

func (s *Scheduler) rejectForCapacity(req *domain.PickupRequest) {
	s.logStatus("Cabin full (%d/%d): call from floor %d keeps waiting", s.cabin.Occupancy, s.cfg.MaxCapacity, req.PickupFloor)
	s.log.Warn().Msgf("capacity full floor=%d request=%d occupancy=%d", req.PickupFloor, req.ID, s.cabin.Occupancy)
	s.emit(s.eventFor(req, domain.EventCapacityFull, 0))
}

func (s *Scheduler) load(ctx context.Context, req *domain.PickupRequest) error {
	s.setStatus(domain.WaitingForPassenger)
	if err := s.pause(ctx, s.cfg.PassengerMovementTime); err != nil {
		return err
	}

	before := s.cabin.Occupancy
	if err := s.ledger.Board(req, s.now()); err != nil {
		// Only a pending request reaches here; anything else is a bookkeeping bug.
		s.log.Error().Msgf("op=stop.load request=%d err=%v", req.ID, err)
		return nil
	}
	s.syncOccupancy()

	wait := 0
	if req.WaitSeconds != nil {
		wait = *req.WaitSeconds
	}
	rec := s.eventFor(req, domain.EventPickup, wait)
	rec.OccupancyBefore = before
	s.emit(rec)

	s.logStatus("Passenger boarded at floor %d after %ds; select a destination", req.PickupFloor, wait)
	return s.awaitDestination(ctx, req)
}

// awaitDestination opens the inner panel and waits for the boarded passenger to pick a
// floor. Commands keep flowing while waiting, so the wait ends as soon as a selection
// reaches req or DestinationTimeout elapses, whichever comes first.
func (s *Scheduler) awaitDestination(ctx context.Context, req *domain.PickupRequest) error {
	s.panelOpen = true
	s.publish()
	defer func() {
		s.panelOpen = false
		s.publish()
	}()

	timer := time.NewTimer(s.cfg.DestinationTimeout)
	defer timer.Stop()

	for !req.HasDestination() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			s.destinationTimedOut(req)
			return nil
		case cmd := <-s.cmds:
			cmd.apply(s)
		}
	}
	return nil
}

func (s *Scheduler) destinationTimedOut(req *domain.PickupRequest) {
	s.log.Warn().Msgf("destination timeout request=%d pickup_floor=%d policy=%s", req.ID, req.PickupFloor, s.cfg.TimeoutPolicy)

	if s.cfg.TimeoutPolicy != TimeoutFallback {
		s.logStatus("No destination selected for passenger from floor %d", req.PickupFloor)
		return
	}

	if s.cfg.FallbackFloor == req.PickupFloor {
		if err := s.ledger.Release(req); err != nil {
			s.log.Error().Msgf("op=stop.release request=%d err=%v", req.ID, err)
			return
		}
		s.syncOccupancy()
		s.logStatus("No destination selected; passenger left the cabin at floor %d", req.PickupFloor)
		return
	}

	if err := s.ledger.AssignDestinationTo(req, s.cfg.FallbackFloor); err != nil {
		s.log.Error().Msgf("op=stop.fallback request=%d err=%v", req.ID, err)
		return
	}
	s.logStatus("No destination selected; sending passenger from floor %d to floor %d", req.PickupFloor, s.cfg.FallbackFloor)
}

// animateDoor moves the door in DoorSteps equal sub-intervals, pausing before each
// update.
func (s *Scheduler) animateDoor(ctx context.Context, from, to float64, st domain.CabinStatus) error {
	s.setStatus(st)

	step := DoorStepDuration(s.cfg.DoorOperationTime, s.cfg.DoorSteps)
	for _, f := range DoorFrames(from, to, s.cfg.DoorSteps) {
		if err := s.pause(ctx, step); err != nil {
			return err
		}
		s.cabin.DoorOpenFraction = f
		s.publish()
	}
	return nil
}

func (s *Scheduler) eventFor(req *domain.PickupRequest, kind domain.EventKind, wait int) domain.EventRecord {
	return domain.EventRecord{
		RecordedAt:      s.now(),
		TimeOfDay:       req.SimulationClockAtCreation,
		PickupFloor:     req.PickupFloor,
		CabinFloor:      req.CabinFloorAtCreation,
		WaitSeconds:     wait,
		OccupancyBefore: s.cabin.Occupancy,
		State:           s.cabin.Status.String(),
		Kind:            kind,
	}
}
