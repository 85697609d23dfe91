package services

import "elevator-sim-service/internal/domain"

// command is an input applied on the scheduler goroutine. Commands that change state
// publish before replying, so a caller's next Snapshot already reflects its input.
type command interface {
	apply(s *Scheduler)
}

type callCommand struct {
	floor int
	reply chan domain.PickupRequest
}

func (c callCommand) apply(s *Scheduler) {
	now := s.now()
	s.clock.Start(now)

	req := s.ledger.Add(c.floor, now, s.clock.TimeOfDay, s.cabin.Floor)
	s.logStatus("Elevator called from floor %d", c.floor)
	s.publish()

	c.reply <- s.copyRequest(req)
}

type destinationResult struct {
	req domain.PickupRequest
	ok  bool
}

type destinationCommand struct {
	floor int
	reply chan destinationResult
}

func (c destinationCommand) apply(s *Scheduler) {
	req, ok := s.ledger.AssignDestination(c.floor, s.cabin.Floor)
	if !ok {
		s.log.Debug().Msgf("destination ignored floor=%d reason=no eligible passenger", c.floor)
		c.reply <- destinationResult{}
		return
	}

	s.logStatus("Destination floor %d selected for passenger from floor %d", c.floor, req.PickupFloor)

	// The doors are already open at the chosen floor: the rider steps straight out.
	if s.panelOpen && c.floor == s.cabin.Floor {
		n, err := s.ledger.CompleteAt(c.floor)
		if err != nil {
			s.log.Error().Msgf("op=destination.complete floor=%d err=%v", c.floor, err)
		}
		s.syncOccupancy()
		s.logStatus("%d passenger(s) left the cabin at floor %d", n, c.floor)
	}
	s.publish()

	c.reply <- destinationResult{req: s.copyRequest(req), ok: true}
}

type clockCommand struct {
	hour, minute int
	reply        chan bool
}

func (c clockCommand) apply(s *Scheduler) {
	accepted := s.clock.SetTimeOfDay(c.hour, c.minute)
	if accepted {
		s.logStatus("Simulation time set to %02d:%02d", c.hour, c.minute)
		s.publish()
	}
	c.reply <- accepted
}
