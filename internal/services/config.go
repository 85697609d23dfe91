package services

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutPolicy decides what happens when a boarded passenger never selects a destination.
type TimeoutPolicy string

const (
	// TimeoutLeave keeps the passenger aboard without a destination. A later
	// SelectDestination still reaches it.
	TimeoutLeave TimeoutPolicy = "leave"
	// TimeoutFallback sends the passenger to Config.FallbackFloor.
	TimeoutFallback TimeoutPolicy = "fallback"
)

// Config holds the building shape and every fixed duration of the simulation.
type Config struct {
	Floors      int
	MaxCapacity int

	FloorTravelTime       time.Duration
	DoorOperationTime     time.Duration
	DoorSteps             int
	PassengerMovementTime time.Duration
	IdleInterval          time.Duration
	RetryInterval         time.Duration
	DestinationTimeout    time.Duration

	TimeoutPolicy TimeoutPolicy
	FallbackFloor int

	StatusLogSize int
	// Buffered notifications and event records; the scheduler drops rather than block.
	NotifyBuffer int
	EventBuffer  int
}

func DefaultConfig() Config {
	return Config{
		Floors:                20,
		MaxCapacity:           10,
		FloorTravelTime:       time.Second,
		DoorOperationTime:     500 * time.Millisecond,
		DoorSteps:             20,
		PassengerMovementTime: 2 * time.Second,
		IdleInterval:          500 * time.Millisecond,
		RetryInterval:         100 * time.Millisecond,
		DestinationTimeout:    30 * time.Second,
		TimeoutPolicy:         TimeoutLeave,
		FallbackFloor:         0,
		StatusLogSize:         50,
		NotifyBuffer:          256,
		EventBuffer:           256,
	}
}

func (c Config) Validate() error {
	if c.Floors < 2 {
		return fmt.Errorf("scheduler config: floors must be at least 2, got %d", c.Floors)
	}
	if c.MaxCapacity < 1 {
		return fmt.Errorf("scheduler config: max capacity must be positive, got %d", c.MaxCapacity)
	}
	if c.DoorSteps < 1 {
		return fmt.Errorf("scheduler config: door steps must be positive, got %d", c.DoorSteps)
	}
	if c.IdleInterval <= 0 || c.RetryInterval <= 0 {
		return errors.New("scheduler config: idle and retry intervals must be positive")
	}
	if c.FloorTravelTime < 0 || c.DoorOperationTime < 0 || c.PassengerMovementTime < 0 || c.DestinationTimeout < 0 {
		return errors.New("scheduler config: durations must not be negative")
	}
	switch c.TimeoutPolicy {
	case TimeoutLeave, TimeoutFallback:
	default:
		return fmt.Errorf("scheduler config: unknown timeout policy %q", c.TimeoutPolicy)
	}
	if c.FallbackFloor < 0 || c.FallbackFloor >= c.Floors {
		return fmt.Errorf("scheduler config: fallback floor %d outside [0,%d)", c.FallbackFloor, c.Floors)
	}
	return nil
}
